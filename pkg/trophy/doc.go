/*
Package trophy turns a game's trophy files into a normalized Game, and a set of
games into a Profile with a score and a level.

# Quick Start

Decode one game from its two files:

	game, report, err := trophy.DecodeGame("NPWR00001_00", progressBytes, confBytes, trophy.Options{})
	if err != nil {
	    log.Fatal(err)
	}
	fmt.Println(game.Title, game.Score(), report.Len())

Scan a trophy directory into a profile:

	dir := source.NewDir("/path/to/trophy")
	profile := trophy.NewProfile("")
	res, err := trophy.NewScanner(dir, dir, trophy.Options{Workers: 4}).Scan(ctx, profile)
	for _, f := range res.Failures {
	    fmt.Printf("%s: %v\n", f.NpCommID, f.Err)
	}
	sum := profile.Summary()
	fmt.Printf("level %d (%d%%), %d points\n", sum.Level, sum.Percent, sum.Points)

# Semantics

  - The trophy-set descriptor decides which trophies exist. Unlock records for
    ids it does not list are dropped and reported as diagnostics.
  - A trophy is unlocked iff its unlock record's state is nonzero; unlocked
    trophies always carry UnlockedAt.
  - Refreshing a Game (Merge, Profile.Upsert) updates trophies by id and
    appends new ones. Trophies are never removed.
  - A game's score is capped at MaxGameScore; the level is computed from the
    sum of capped scores.

# Concurrency

DecodeGame and Reconcile are pure. A Game is not safe for concurrent mutation;
Profile serializes every Upsert behind its own lock and hands out copies.
*/
package trophy
