// Command chompchamps-player-lua is a user-scriptable player
// (SPEC_FULL.md §3.9): it embeds a Lua VM via gopher-lua and calls a
// `choose_move(width, height, x, y, cells, game_over)` function the
// script defines for each turn, instead of hardcoding a strategy in Go.
package main

import (
	"fmt"
	"os"
	"strconv"

	lua "github.com/yuin/gopher-lua"

	"github.com/chompchamps/arbiter/internal/playerclient"
	"github.com/chompchamps/arbiter/internal/wire"
)

const scriptPathEnv = "CHOMPCHAMPS_LUA_SCRIPT"

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "usage: %s width height (script path via %s)\n", os.Args[0], scriptPathEnv)
		os.Exit(1)
	}
	width, err1 := strconv.Atoi(os.Args[1])
	height, err2 := strconv.Atoi(os.Args[2])
	if err1 != nil || err2 != nil {
		fmt.Fprintf(os.Stderr, "usage: %s width height\n", os.Args[0])
		os.Exit(1)
	}

	scriptPath := os.Getenv(scriptPathEnv)
	if scriptPath == "" {
		fmt.Fprintf(os.Stderr, "chompchamps-player-lua: %s is not set\n", scriptPathEnv)
		os.Exit(1)
	}

	L := lua.NewState()
	defer L.Close()
	if err := L.DoFile(scriptPath); err != nil {
		fmt.Fprintf(os.Stderr, "chompchamps-player-lua: loading %s: %v\n", scriptPath, err)
		os.Exit(1)
	}

	c, err := playerclient.Attach(width, height)
	if err != nil {
		fmt.Fprintf(os.Stderr, "chompchamps-player-lua: attach failed: %v\n", err)
		os.Exit(1)
	}

	for {
		if err := c.WaitTurn(); err != nil {
			return
		}

		snap, err := c.Read()
		if err != nil {
			return
		}
		if snap.GameOver {
			return
		}

		octet, err := chooseMove(L, snap)
		if err != nil {
			fmt.Fprintf(os.Stderr, "chompchamps-player-lua: script error: %v\n", err)
			octet = byte(wire.MaxValidDirection) + 1
		}

		if err := playerclient.SubmitMove(octet); err != nil {
			return
		}
	}
}

// chooseMove calls the script's choose_move(width, height, x, y, cells,
// game_over) function, passing the board as a 1-indexed Lua table of
// rows of cells (script authors think in Lua's native 1-based
// indexing). x and y are passed 0-based, unconverted, so the player's
// own cell is cells[y+1][x+1].
func chooseMove(L *lua.LState, snap playerclient.Snapshot) (byte, error) {
	rows := L.NewTable()
	for y := 0; y < snap.Height; y++ {
		row := L.NewTable()
		for x := 0; x < snap.Width; x++ {
			v, _ := snap.At(x, y)
			row.Append(lua.LNumber(v))
		}
		rows.Append(row)
	}

	fn := L.GetGlobal("choose_move")
	if fn.Type() != lua.LTFunction {
		return 0, fmt.Errorf("script does not define choose_move")
	}

	if err := L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true},
		lua.LNumber(snap.Width), lua.LNumber(snap.Height),
		lua.LNumber(snap.X), lua.LNumber(snap.Y),
		rows, lua.LBool(snap.GameOver),
	); err != nil {
		return 0, err
	}

	ret := L.Get(-1)
	L.Pop(1)
	n, ok := ret.(lua.LNumber)
	if !ok {
		return 0, fmt.Errorf("choose_move must return a direction number, got %s", ret.Type())
	}
	return byte(n), nil
}
