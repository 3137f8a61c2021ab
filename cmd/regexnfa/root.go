package main

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"regexnfa/internal/automaton"
	"regexnfa/internal/config"
	"regexnfa/internal/syntax"
	"regexnfa/internal/translator"
)

// ExitCode is an error that carries the process exit status.
type ExitCode struct {
	error
	Code int
}

type rootCommand struct {
	cmd    *cobra.Command
	logger *logrus.Logger
	lookup func(string) (string, bool)

	configPath string
	cfg        config.Config
	tr         *translator.Translator
}

func newRootCommand(stdout, stderr io.Writer, lookup func(string) (string, bool)) *rootCommand {
	c := &rootCommand{
		logger: &logrus.Logger{
			Out:       stderr,
			Formatter: new(logrus.TextFormatter),
			Hooks:     make(logrus.LevelHooks),
			Level:     logrus.InfoLevel,
		},
		lookup: lookup,
		cfg:    config.Default(),
	}
	c.cmd = &cobra.Command{
		Use:               "regexnfa",
		Short:             "compile regular expressions into Thompson NFAs",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.persistentPreRunE,
	}
	c.cmd.SetOut(stdout)
	c.cmd.SetErr(stderr)
	c.cmd.PersistentFlags().AddFlagSet(c.rootCmdPersistentFlagSet())
	c.cmd.AddCommand(
		getCompileCmd(c),
		getMatchCmd(c),
		getDFACmd(c),
		getFindCmd(c),
		getEquivCmd(c),
	)
	return c
}

func (c *rootCommand) rootCmdPersistentFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("", pflag.ContinueOnError)
	flags.StringVarP(&c.configPath, "config", "c", "", "YAML config file")
	must(cobra.MarkFlagFilename(flags, "config", "yaml", "yml"))
	config.AddFlags(flags)
	return flags
}

func (c *rootCommand) persistentPreRunE(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.configPath, c.lookup)
	if err != nil {
		return err
	}
	if err := cfg.ApplyFlags(cmd.Flags()); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg
	if err := c.setupLogger(); err != nil {
		return err
	}
	c.tr = translator.New(c.logger)
	c.logger.WithFields(logrus.Fields{
		"max_pattern_length": cfg.MaxPatternLength,
		"max_depth":          cfg.MaxDepth,
		"output":             cfg.Output,
	}).Debug("configuration loaded")
	return nil
}

func (c *rootCommand) setupLogger() error {
	level, err := logrus.ParseLevel(c.cfg.LogLevel)
	if err != nil {
		return err
	}
	c.logger.SetLevel(level)
	switch c.cfg.LogFormat {
	case "json":
		c.logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		c.logger.SetFormatter(&logrus.TextFormatter{DisableColors: true})
	}
	return nil
}

// compile runs pattern through the limits, the parser and the translator.
func (c *rootCommand) compile(pattern string) (*automaton.Automaton, error) {
	limits := c.cfg.Limits()
	if err := limits.CheckLength(pattern); err != nil {
		return nil, errors.Wrapf(err, "compile %q", pattern)
	}
	n, err := syntax.Parse(pattern)
	if err != nil {
		return nil, errors.Wrapf(&translator.Error{Kind: translator.ParserError, Err: err}, "compile %q", pattern)
	}
	if err := limits.Check(pattern, n); err != nil {
		return nil, errors.Wrapf(err, "compile %q", pattern)
	}
	a, err := c.tr.Translate(n)
	if err != nil {
		return nil, errors.Wrapf(err, "compile %q", pattern)
	}
	return a, nil
}

// execute runs the command line args and returns the process exit status.
func (c *rootCommand) execute(args []string) int {
	c.cmd.SetArgs(args)
	err := c.cmd.Execute()
	if err == nil {
		return 0
	}

	code := 1
	fields := logrus.Fields{}
	var ec ExitCode
	if errors.As(err, &ec) {
		code = ec.Code
	}
	var terr *translator.Error
	if errors.As(err, &terr) {
		fields["kind"] = terr.Kind.String()
	}
	c.logger.WithFields(fields).Error(err)
	return code
}

func must(err error) {
	if err != nil {
		panic(fmt.Sprintf("regexnfa: %v", err))
	}
}
