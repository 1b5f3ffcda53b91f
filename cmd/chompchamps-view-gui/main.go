// Command chompchamps-view-gui performs the same handshake as
// chompchamps-view but renders into an ebiten window instead of a
// terminal (SPEC_FULL.md §3.10), demonstrating that the view side of
// the contract is backend-agnostic. It plays a short capture tone via
// oto on every move that captures a new cell, and can copy the board
// as text to the clipboard with Ctrl+C.
package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.design/x/clipboard"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/chompchamps/arbiter/internal/viewclient"
	"github.com/chompchamps/arbiter/internal/wire"
)

const cellPixels = 24

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "usage: %s width height\n", os.Args[0])
		os.Exit(1)
	}
	width, err1 := strconv.Atoi(os.Args[1])
	height, err2 := strconv.Atoi(os.Args[2])
	if err1 != nil || err2 != nil {
		fmt.Fprintf(os.Stderr, "usage: %s width height\n", os.Args[0])
		os.Exit(1)
	}

	c, err := viewclient.Attach(width, height)
	if err != nil {
		fmt.Fprintf(os.Stderr, "chompchamps-view-gui: attach failed: %v\n", err)
		os.Exit(1)
	}

	tone, err := newCaptureTone()
	if err != nil {
		fmt.Fprintf(os.Stderr, "chompchamps-view-gui: audio init failed: %v (continuing muted)\n", err)
	}

	g := &guiView{width: width, height: height, tone: tone}

	go func() {
		err := c.Run(func(snap viewclient.Snapshot) error {
			g.update(snap)
			return nil
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "chompchamps-view-gui: %v\n", err)
		}
		g.mu.Lock()
		g.closed = true
		g.mu.Unlock()
	}()

	ebiten.SetWindowSize(width*cellPixels, height*cellPixels+40)
	ebiten.SetWindowTitle("ChompChamps")
	if err := ebiten.RunGame(g); err != nil && err != ebiten.Termination {
		fmt.Fprintf(os.Stderr, "chompchamps-view-gui: %v\n", err)
	}
}

type guiView struct {
	mu          sync.RWMutex
	width       int
	height      int
	snap        viewclient.Snapshot
	totalScores uint32
	closed      bool
	tone        *captureTone

	clipboardOnce sync.Once
	clipboardOK   bool
}

// update receives a fresh snapshot from the handshake goroutine and
// triggers the capture tone if any player's aggregate score rose.
func (g *guiView) update(snap viewclient.Snapshot) {
	var total uint32
	for _, p := range snap.Players {
		total += p.Score
	}

	g.mu.Lock()
	rose := total > g.totalScores
	g.totalScores = total
	g.snap = snap
	g.mu.Unlock()

	if rose && g.tone != nil {
		g.tone.Play()
	}
}

func (g *guiView) Update() error {
	g.mu.RLock()
	closed := g.closed
	gameOver := g.snap.GameOver
	g.mu.RUnlock()
	if closed || ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyC) &&
		(ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight)) {
		g.copyBoardToClipboard()
	}

	if gameOver && inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	return nil
}

func (g *guiView) Draw(screen *ebiten.Image) {
	g.mu.RLock()
	snap := g.snap
	g.mu.RUnlock()

	screen.Fill(color.RGBA{20, 20, 24, 255})
	if snap.Width == 0 {
		return
	}

	for y := 0; y < snap.Height; y++ {
		for x := 0; x < snap.Width; x++ {
			v := snap.Cells[y*snap.Width+x]
			clr := rewardColor(v)
			cell := ebiten.NewImage(cellPixels-1, cellPixels-1)
			cell.Fill(clr)
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(float64(x*cellPixels), float64(y*cellPixels))
			screen.DrawImage(cell, op)
		}
	}

	labelY := snap.Height*cellPixels + 14
	for i, p := range snap.Players {
		text := fmt.Sprintf("p%d %s score=%d valid=%d invalid=%d", i, p.Name, p.Score, p.ValidMoves, p.InvalidMoves)
		drawLabel(screen, text, 4, labelY+i*14)
	}
}

func (g *guiView) Layout(_, _ int) (int, int) {
	return g.width * cellPixels, g.height*cellPixels + 40
}

// rewardColor maps an uncaptured reward to a green shade and a
// captured cell to a color keyed on the capturing player's index.
func rewardColor(v int32) color.Color {
	if wire.IsCaptured(v) {
		idx := wire.DecodeCapture(v)
		palette := []color.RGBA{
			{200, 60, 60, 255}, {60, 120, 200, 255}, {200, 180, 60, 255},
			{160, 60, 200, 255}, {60, 200, 160, 255}, {200, 120, 60, 255},
			{120, 200, 60, 255}, {200, 60, 160, 255}, {140, 140, 140, 255},
		}
		return palette[idx%len(palette)]
	}
	shade := uint8(40 + v*20)
	return color.RGBA{0, shade, 0, 255}
}

var labelFace = basicfont.Face7x13

func drawLabel(screen *ebiten.Image, s string, x, y int) {
	d := &font.Drawer{
		Dst:  screen,
		Src:  image.NewUniform(color.White),
		Face: labelFace,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// copyBoardToClipboard renders the current snapshot as plain text and
// copies it to the system clipboard. It does nothing if the clipboard
// cannot be initialized.
func (g *guiView) copyBoardToClipboard() {
	g.clipboardOnce.Do(func() {
		g.clipboardOK = clipboard.Init() == nil
	})
	if !g.clipboardOK {
		return
	}

	g.mu.RLock()
	snap := g.snap
	g.mu.RUnlock()

	var b strings.Builder
	for y := 0; y < snap.Height; y++ {
		for x := 0; x < snap.Width; x++ {
			v := snap.Cells[y*snap.Width+x]
			if wire.IsCaptured(v) {
				fmt.Fprintf(&b, "%d", wire.DecodeCapture(v)%10)
			} else {
				fmt.Fprintf(&b, "%d", v)
			}
		}
		b.WriteByte('\n')
	}
	clipboard.Write(clipboard.FmtText, []byte(b.String()))
}

// captureTone plays a short sine blip through oto whenever a move
// captures a cell, synthesizing samples on demand from a Read callback
// rather than pre-rendering a file.
type captureTone struct {
	ctx     *oto.Context
	player  *oto.Player
	samples []byte
	pos     int
	mu      sync.Mutex
}

func newCaptureTone() (*captureTone, error) {
	const sampleRate = 44100
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return nil, err
	}
	<-ready

	t := &captureTone{ctx: ctx}
	t.samples = renderBlip(sampleRate, 880.0, 0.08)
	t.player = ctx.NewPlayer(t)
	return t, nil
}

func (t *captureTone) Play() {
	t.mu.Lock()
	t.pos = 0
	t.mu.Unlock()
	t.player.Play()
}

func (t *captureTone) Read(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := copy(p, t.samples[t.pos:])
	t.pos += n
	for i := n; i < len(p); i++ {
		p[i] = 0
	}
	return len(p), nil
}

// renderBlip synthesizes a decaying sine tone as little-endian
// float32 PCM, one channel.
func renderBlip(sampleRate int, freq, seconds float64) []byte {
	n := int(float64(sampleRate) * seconds)
	buf := new(bytes.Buffer)
	buf.Grow(n * 4)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(sampleRate)
		decay := 1.0 - t/seconds
		sample := float32(math.Sin(2*math.Pi*freq*t) * decay * 0.3)
		writeFloat32LE(buf, sample)
	}
	return buf.Bytes()
}

func writeFloat32LE(buf *bytes.Buffer, f float32) {
	bits := math.Float32bits(f)
	buf.WriteByte(byte(bits))
	buf.WriteByte(byte(bits >> 8))
	buf.WriteByte(byte(bits >> 16))
	buf.WriteByte(byte(bits >> 24))
}

