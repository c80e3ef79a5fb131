// Command selfplay drives one game of Tic-Tac-Toe or Connect-4 to
// completion, re-rooting a fresh engine at the current position before
// every move and printing the board after each one. It is an external
// collaborator of the core packages (board, mcgs, games/...), not part of
// them.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/pkg/errors"

	"github.com/boardsearch/mcgs/games/connect4"
	"github.com/boardsearch/mcgs/games/tictactoe"
	"github.com/boardsearch/mcgs/mcgs"
)

var (
	gameFlag = flag.String("game", "tictactoe", "game to play: tictactoe or connect4")
	simFlag  = flag.Uint("simulations", 200, "number of run() calls per move")
	puctFlag = flag.Float64("puct", 1.0, "PUCT exploration constant")
	seedFlag = flag.Uint64("seed", 1, "base PRNG seed; the side to move each turn is seeded with seed+turn")
)

func main() {
	flag.Parse()
	log.SetFlags(log.Ltime)

	var err error
	switch *gameFlag {
	case "tictactoe":
		err = playTicTacToe()
	case "connect4":
		err = playConnect4()
	default:
		err = errors.Errorf("unknown game %q", *gameFlag)
	}
	if err != nil {
		log.Fatalf("selfplay: %+v", err)
	}
}

func playTicTacToe() error {
	g := tictactoe.New()
	state := g.GetState(tictactoe.Board{})

	turn := 0
	for !state.Terminal {
		conf := mcgs.Config{PUCT: float32(*puctFlag), Seed: *seedFlag + uint64(turn)}
		if !conf.IsValid() {
			return errors.Errorf("invalid puct constant %f", *puctFlag)
		}
		e := mcgs.New[tictactoe.Board](g, state, conf)
		e.Search(*simFlag)

		state = g.Transition(state, bestMove(e, g, state))
		printTicTacToe(state.Board)
		turn++
	}
	log.Printf("result: %+v", state.Result)
	return nil
}

func playConnect4() error {
	g := connect4.New()
	state := g.GetState(connect4.Board{})

	turn := 0
	for !state.Terminal {
		conf := mcgs.Config{PUCT: float32(*puctFlag), Seed: *seedFlag + uint64(turn)}
		if !conf.IsValid() {
			return errors.Errorf("invalid puct constant %f", *puctFlag)
		}
		e := mcgs.New[connect4.Board](g, state, conf)
		e.Search(*simFlag)

		state = g.Transition(state, bestMove(e, g, state))
		printConnect4(state.Board)
		turn++
	}
	log.Printf("result: %+v", state.Result)
	return nil
}

// bestMove picks the legal action whose resulting child node has the
// highest Q under e, breaking ties by first-encountered order.
func bestMove[B comparable](e *mcgs.Engine[B], game mcgs.Game[B], state *mcgs.State[B]) mcgs.Action {
	var (
		best     mcgs.Action
		bestQ    float32
		haveBest bool
	)
	for _, a := range state.LegalActions {
		child := game.Transition(state, a)
		q := e.GetNode(child).Q()
		if !haveBest || q > bestQ {
			best, bestQ, haveBest = a, q, true
		}
	}
	return best
}

func printTicTacToe(b tictactoe.Board) {
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			fmt.Printf("%3d", b[r][c])
		}
		fmt.Println()
	}
	fmt.Println()
}

func printConnect4(b connect4.Board) {
	for r := 0; r < 6; r++ {
		for c := 0; c < 7; c++ {
			fmt.Printf("%3d", b[r][c])
		}
		fmt.Println()
	}
	fmt.Println()
}
