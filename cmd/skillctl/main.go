// Copyright 2025 Buildr Technologies
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/buildrtech/dotagents/repo"
	"github.com/buildrtech/dotagents/skills"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "skillctl",
		Usage: "Build and install skills for AI coding agents",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Project root (defaults to the enclosing git repository)",
			},
		},
		Before: setupLogger,
		Action: func(c *cli.Context) error {
			_ = cli.ShowAppHelp(c)
			return cli.Exit("", 1)
		},
		Commands: []*cli.Command{
			{
				Name:   "build",
				Usage:  "Build all skills from skills/",
				Action: buildCommand,
			},
			{
				Name:   "install",
				Usage:  "Build and install skills plus the global AGENTS.md",
				Action: installCommand,
			},
			{
				Name:   "install-skills",
				Usage:  "Build and install skills only",
				Action: installSkillsCommand,
			},
			{
				Name:   "clean",
				Usage:  "Remove all installed artifacts",
				Action: cleanCommand,
			},
		},
	}
}

func projectRoot(c *cli.Context) (string, error) {
	if root := c.String("root"); root != "" {
		return root, nil
	}
	return repo.FindRoot(c.Context)
}

func buildSkills(c *cli.Context, root string) error {
	builder, err := skills.NewBuilder(root)
	if err != nil {
		return err
	}
	defer builder.Release()

	fmt.Fprintln(c.App.Writer, "Building skills...")
	built, err := builder.Build()
	if err != nil {
		return err
	}

	for _, name := range built {
		fmt.Fprintf(c.App.Writer, "  %s\n", name)
	}
	fmt.Fprintf(c.App.Writer, "  Built %d skills\n", len(built))
	return nil
}

func installSkills(c *cli.Context, root string) error {
	installer, err := skills.NewInstaller(root)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, "Installing skills...")
	installed, err := installer.InstallSkills()
	if err != nil {
		return err
	}

	targets := make([]string, 0, len(installed))
	for target := range installed {
		targets = append(targets, target)
	}
	sort.Strings(targets)
	for _, target := range targets {
		fmt.Fprintf(c.App.Writer, "  %s: %d skills\n", target, installed[target])
	}
	return nil
}

func installGlobalAgentsMD(c *cli.Context, root string) error {
	installer, err := skills.NewInstaller(root)
	if err != nil {
		return err
	}

	dest, err := installer.InstallGlobalAgentsMD()
	if err != nil {
		return err
	}
	if dest != "" {
		fmt.Fprintf(c.App.Writer, "Installed global AGENTS.md to %s\n", dest)
	}
	return nil
}

func buildCommand(c *cli.Context) error {
	root, err := projectRoot(c)
	if err != nil {
		return err
	}
	return buildSkills(c, root)
}

func installCommand(c *cli.Context) error {
	root, err := projectRoot(c)
	if err != nil {
		return err
	}

	if err := buildSkills(c, root); err != nil {
		return err
	}
	if err := installSkills(c, root); err != nil {
		return err
	}
	if err := installGlobalAgentsMD(c, root); err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, "\nAll done!")
	return nil
}

func installSkillsCommand(c *cli.Context) error {
	root, err := projectRoot(c)
	if err != nil {
		return err
	}

	if err := buildSkills(c, root); err != nil {
		return err
	}
	return installSkills(c, root)
}

func cleanCommand(c *cli.Context) error {
	root, err := projectRoot(c)
	if err != nil {
		return err
	}

	installer, err := skills.NewInstaller(root)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, "Cleaning installed artifacts...")
	if err := installer.Clean(); err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, "  Done")
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
