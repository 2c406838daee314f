// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command pollctl lists polls, votes and shows results from a terminal. The
// device token is kept in a local file so repeat votes replace each other.
//
//	pollctl [flags] list [query]
//	pollctl [flags] vote <poll-id> [option-number]
//	pollctl [flags] results <poll-id>
//	pollctl [flags] device
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/danielhkuo/ridepolls/backend"
	"github.com/danielhkuo/ridepolls/cliparse"
	"github.com/danielhkuo/ridepolls/device"
	"github.com/danielhkuo/ridepolls/logging"
	"github.com/danielhkuo/ridepolls/polls"
	"github.com/danielhkuo/ridepolls/shell"
)

const usage = `usage: pollctl [flags] <command>

commands:
  list [query]                   list polls, optionally filtered
  vote <poll-id> [option-number] vote; prompts when no number is given
  results <poll-id>              show current totals
  device                         print this machine's device token
`

var errUsage = errors.New("invalid usage")

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "pollctl:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, in io.Reader, out io.Writer) error {
	cfg, rest, err := cliparse.ParseClientFlags(args)
	if err != nil {
		return err
	}
	if len(rest) == 0 {
		return errUsage
	}

	logger, err := logging.NewCLI(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	tokens := device.NewProvider(device.NewFileStorage(cfg.DeviceFile), logger)
	if rest[0] == "device" {
		fmt.Fprintln(out, tokens.Token())
		return nil
	}

	b, err := backend.Open(ctx, cfg.Store, false, logger)
	if err != nil {
		return err
	}
	defer b.Close()

	catalog := polls.NewCatalog(b.Store)
	results := polls.NewResults(b.Store)

	switch cmd, params := rest[0], rest[1:]; cmd {
	case "list":
		list, err := catalog.ListPolls(ctx, strings.Join(params, " "))
		if err != nil {
			return err
		}
		for _, p := range list {
			fmt.Fprintf(out, "%s\t%s\n", p.ID, p.Question)
		}
		return nil

	case "results":
		if len(params) != 1 {
			return errUsage
		}
		poll, err := catalog.FetchPoll(ctx, params[0])
		if err != nil {
			return err
		}
		card, err := shell.NewResultsCard(ctx, poll, results, logger)
		if err != nil {
			return err
		}
		return shell.Render(out, card.View())

	case "vote":
		if len(params) < 1 || len(params) > 2 {
			return errUsage
		}
		poll, err := catalog.FetchPoll(ctx, params[0])
		if err != nil {
			return err
		}
		if len(poll.Options) == 0 {
			return fmt.Errorf("poll %s has no options", poll.ID)
		}

		card := shell.NewCard(poll, polls.NewVoter(b.Store, tokens, logger), results, logger)

		choice := ""
		if len(params) == 2 {
			choice = params[1]
		} else {
			if err := shell.Render(out, card.View()); err != nil {
				return err
			}
			fmt.Fprint(out, "> ")
			line, err := bufio.NewReader(in).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("reading choice: %w", err)
			}
			choice = strings.TrimSpace(line)
		}

		n, err := strconv.Atoi(choice)
		if err != nil || n < 1 || n > len(poll.Options) {
			return fmt.Errorf("choose a number from 1 to %d", len(poll.Options))
		}

		if err := card.Select(ctx, poll.Options[n-1].ID); err != nil {
			return err
		}
		if err := card.Err(); err != nil {
			logger.Warn("results unavailable", zap.Error(err))
		}
		return shell.Render(out, card.View())
	}

	return errUsage
}
