// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package shell drives one poll card from ballot to results.

	card := shell.NewCard(poll, voter, results, logger)
	if err := card.Select(ctx, optionID); err != nil {
		// still voting; show the error and let the user retry
	}
	shell.Render(os.Stdout, card.View())

States:

	voting ──Select ok──▶ results

Select is rejected with ErrBusy while a vote is in flight and with
ErrAlreadyVoted after the transition. Totals shown are a snapshot taken
right after the local vote; other devices' later votes do not update it.
*/
package shell
