// SPDX-License-Identifier: Apache-2.0
// Copyright 2020,2021 Marcus Soll
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	  http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// sn_ake is a server for a classic snake game.
// The server owns the only game; clients start it and move the snake one cell per request.
package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type serveOptions struct {
	addr     string
	quiet    bool
	showui   bool
	print    string
	dump     string
	printWin string
}

type playOptions struct {
	server string
	steps  int
	ai     string
	quiet  bool
}

var (
	logLevel = "info"
	serveOpt = serveOptions{addr: "127.0.0.1:8080"}
	playOpt  = playOptions{server: "http://127.0.0.1:8080", steps: 0, ai: "greedy"}

	rootCmd = &cobra.Command{
		Use:           "sn_ake",
		Short:         "Server for a classic snake game.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			replaceFromEnv()
			setLogger(logLevel)
			return nil
		},
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Starts the game server.",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}

	playCmd = &cobra.Command{
		Use:   "play",
		Short: "Plays a game against a running server.",
		Args:  cobra.NoArgs,
		RunE:  runPlay,
	}
)

// replaceFromEnv lets the environment win over flags.
func replaceFromEnv() {
	env := os.Getenv("ADDR")
	if env != "" {
		fmt.Println("Using ADDR from env:", env)
		serveOpt.addr = env
	}

	env = os.Getenv("SERVER")
	if env != "" {
		fmt.Println("Using SERVER from env:", env)
		playOpt.server = env
	}

	env = os.Getenv("LOG_LEVEL")
	if env != "" {
		fmt.Println("Using LOG_LEVEL from env:", env)
		logLevel = env
	}
}

// buildUI wraps base in the optional file UIs, in the same order as the flags are listed.
func buildUI(base UI, print, dump, printWin string) UI {
	ui := base
	if print != "" {
		ui = &teeUI{File: print, UI: ui}
	}
	if dump != "" {
		ui = &dumpUI{File: dump, UI: ui}
	}
	if printWin != "" {
		ui = &printWinUI{File: printWin, UI: ui}
	}
	return ui
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var base UI
	if serveOpt.quiet {
		base = quietUI{}
	} else if serveOpt.showui {
		base = &terminalUI{Quit: stop}
		// The terminal ui owns the screen.
		logrus.SetOutput(io.Discard)
	} else {
		base = cmdUI{}
	}
	h := newHub(buildUI(base, serveOpt.print, serveOpt.dump, serveOpt.printWin))

	if err := h.Initialise(); err != nil {
		return errors.Wrap(err, "initialise ui failed")
	}

	game := NewSharedGame(NewGame(rand.New(rand.NewSource(time.Now().UnixNano()))), h)
	h.NewGame(game.Snapshot())

	server, err := NewServer(game, WithHub(h))
	if err != nil {
		return errors.Wrap(err, "new server failed")
	}

	runErr := server.Run(ctx, serveOpt.addr)
	logger.Info("server stopped")

	if err := h.Finish(game.Snapshot()); err != nil {
		logger.WithError(err).Error("finish ui failed")
	}
	h.Wait()
	return errors.Wrap(runErr, "run server failed")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ai, err := GetAI(playOpt.ai, rand.New(rand.NewSource(time.Now().UnixNano())))
	if err != nil {
		return errors.Wrap(err, "get ai failed")
	}

	var ui UI = cmdUI{}
	if playOpt.quiet {
		ui = quietUI{}
	}
	if err := ui.Initialise(); err != nil {
		return errors.Wrap(err, "initialise ui failed")
	}

	logger.WithFields(logrus.Fields{"server": playOpt.server, "ai": ai.Name()}).Info("playing")
	last, err := play(ctx, &Client{Endpoint: playOpt.server, HTTP: newHTTPClient()}, ai, playOpt.steps, ui)
	if finishErr := ui.Finish(last); finishErr != nil {
		logger.WithError(finishErr).Error("finish ui failed")
	}
	ui.Wait()
	return errors.Wrap(err, "play failed")
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", logLevel, "Log level (trace, debug, info, warn, error)")

	serveCmd.Flags().StringVar(&serveOpt.addr, "addr", serveOpt.addr, "Address to listen on")
	serveCmd.Flags().BoolVar(&serveOpt.quiet, "quiet", false, "Do not print the field")
	serveCmd.Flags().BoolVar(&serveOpt.showui, "ui", false, "Enables terminal ui")
	serveCmd.Flags().StringVar(&serveOpt.print, "print", "", "Prints every state into file")
	serveCmd.Flags().StringVar(&serveOpt.dump, "dump", "", "Dumps all states as gob to file")
	serveCmd.Flags().StringVar(&serveOpt.printWin, "printwin", "", "Prints outcome of the last game into file")

	playCmd.Flags().StringVar(&playOpt.server, "server", playOpt.server, "Server endpoint")
	playCmd.Flags().IntVar(&playOpt.steps, "steps", playOpt.steps, "Maximum number of moves, 0 for no limit")
	playCmd.Flags().StringVar(&playOpt.ai, "ai", playOpt.ai, fmt.Sprintf("AI to play with (%s)", strings.Join(AINames, ", ")))
	playCmd.Flags().BoolVar(&playOpt.quiet, "quiet", false, "Only print result")

	rootCmd.AddCommand(serveCmd, playCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
