// Package game implements the blackjack round engine for a single table.
//
// The main type is Engine, which owns the shoe, the dealer's hand and a fixed
// row of betting seats, and walks one round at a time through its state
// machine: Betting, Dealing, PlayerTurn, DealerReveal, DealerPlay and
// Settlement.
//
// # Basic Usage
//
// Place bets, deal, play the seats, then let the clock run the dealer:
//
//	e, err := game.NewEngine(game.DefaultConfig(), game.WithRNG(randutil.New(42)))
//	e.PlaceBet(0, 10)
//	e.PlaceBet(2, 20)
//	if err := e.Deal(); err != nil {
//	    // shoe exhausted, round aborted
//	}
//	for e.Phase() == game.PhasePlayerTurn {
//	    _ = e.Stand()
//	}
//	_ = e.Update(frame) // once per frame from the driving loop
//	if s, ok := e.State().(game.Settlement); ok {
//	    for _, h := range s.Result.Hands { ... }
//	}
//
// # Legality
//
// Every action is a no-op when its precondition fails: the engine logs the
// rejected action at debug level and leaves the round untouched. Use the
// Can* predicates to decide which actions to offer. The only error an action
// returns is a wrapped deck.ErrShoeEmpty, after which the round is Aborted.
//
// # Timing
//
// The engine holds no timers. The caller feeds elapsed time through Update
// and the engine performs the delayed transitions configured in Timing.
// With a zero Timing every transition happens synchronously.
//
// # Deterministic Testing
//
// Inject a stacked shoe to control every card dealt:
//
//	shoe := deck.NewStackedShoe(deck.MustParseCards("8s 10d 8h 7c 3d 5s")...)
//	e, _ := game.NewEngine(cfg, game.WithShoe(shoe))
//
// The engine is not safe for concurrent use; a single driving loop must
// serialize every call.
package game
