package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/pflag"

	"github.com/go-mclib/menu/pkg/helpers"
	"github.com/go-mclib/menu/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var f helpers.Flags
	fs := pflag.NewFlagSet("menuctl", pflag.ContinueOnError)
	helpers.RegisterFlags(fs, &f)
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	logger := log.New(os.Stdout, "", log.LstdFlags)
	c, err := helpers.NewConsole(f, logger, os.Stdout)
	if err != nil {
		return err
	}
	defer c.Close()

	if f.Interactive {
		return interactive(c, f)
	}

	stop := tui.Follow(c.Bus, func(line string) { logger.Println(line) }, f.Verbose)
	defer stop()
	if err := c.Open(); err != nil {
		return err
	}

	var script io.Reader = os.Stdin
	if f.Script != "" && f.Script != "-" {
		file, err := os.Open(f.Script)
		if err != nil {
			return err
		}
		defer file.Close()
		script = file
	}
	return c.Runner.RunScript(script)
}

func interactive(c *helpers.Console, f helpers.Flags) error {
	program, w := tui.Start(c)
	c.SetOutput(w)
	stop := tui.Follow(c.Bus, func(line string) { program.Send(tui.LogMsg(line)) }, f.Verbose)
	defer stop()

	// Send blocks until the program runs
	go func() {
		if err := c.Open(); err != nil {
			c.Logger.Println(err)
			return
		}
		if f.Script == "" {
			return
		}
		file, err := os.Open(f.Script)
		if err != nil {
			c.Logger.Println(err)
			return
		}
		defer file.Close()
		if err := c.Runner.RunScript(file); err != nil {
			c.Logger.Println(err)
		}
	}()

	_, err := program.Run()
	return err
}
