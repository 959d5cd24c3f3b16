package main

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	gqlcore "github.com/ccbrown/gqlcore"
	"github.com/ccbrown/gqlcore/examples/storefront"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type options struct {
	query         string
	file          string
	variables     string
	operationName string
	debug         bool
	logLevel      string
	concurrency   int
	pretty        bool
}

func parseOptions(args []string, stderr io.Writer) (*options, error) {
	ret := &options{}
	flags := pflag.NewFlagSet("gql-exec", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVarP(&ret.query, "query", "q", "", "the document to execute")
	flags.StringVarP(&ret.file, "file", "f", "", "a file to read the document from, or - for stdin")
	flags.StringVar(&ret.variables, "variables", "", "a json object of variable values")
	flags.StringVarP(&ret.operationName, "operation", "o", "", "the name of the operation to execute")
	flags.BoolVar(&ret.debug, "debug", false, "include debugging information in errors")
	flags.StringVar(&ret.logLevel, "log-level", "warning", "the minimum level to log at")
	flags.IntVar(&ret.concurrency, "concurrency", 8, "the maximum number of resolvers to run concurrently per selection")
	flags.BoolVar(&ret.pretty, "pretty", false, "indent the output")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	if (ret.query == "") == (ret.file == "") {
		return nil, errors.New("exactly one of --query or --file is required")
	}
	return ret, nil
}

func (o *options) document(stdin io.Reader) (string, error) {
	if o.query != "" {
		return o.query, nil
	}
	var buf []byte
	var err error
	if o.file == "-" {
		buf, err = ioutil.ReadAll(stdin)
	} else {
		buf, err = ioutil.ReadFile(o.file)
	}
	if err != nil {
		return "", errors.Wrap(err, "unable to read document")
	}
	return string(buf), nil
}

func (o *options) variableValues() (map[string]interface{}, error) {
	if o.variables == "" {
		return nil, nil
	}
	var ret map[string]interface{}
	if err := json.Unmarshal([]byte(o.variables), &ret); err != nil {
		return nil, errors.Wrap(err, "invalid variables")
	}
	return ret, nil
}

// Run executes a document against the sample storefront and writes the response to stdout. It
// returns the process's exit code.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseOptions(args, stderr)
	if err != nil {
		if err != pflag.ErrHelp {
			fmt.Fprintln(stderr, err.Error())
		}
		return 2
	}

	logger := logrus.New()
	logger.SetOutput(stderr)
	level, err := logrus.ParseLevel(opts.logLevel)
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		return 2
	}
	logger.SetLevel(level)

	query, err := opts.document(stdin)
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		return 1
	}
	variables, err := opts.variableValues()
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		return 2
	}

	cfg := &gqlcore.Config{
		Logger:         logger,
		Debug:          opts.debug,
		MaxConcurrency: opts.concurrency,
	}
	storefront.Configure(cfg, storefront.SampleCatalog())
	engine, err := gqlcore.NewEngine(cfg)
	if err != nil {
		logger.WithError(err).Error("unable to create engine")
		return 1
	}
	defer engine.Close()

	resp := engine.Execute(context.Background(), query, variables, opts.operationName)

	var buf []byte
	if opts.pretty {
		buf, err = resp.MarshalIndent("", "  ")
	} else {
		buf, err = resp.Marshal()
	}
	if err != nil {
		logger.WithError(err).Error("unable to marshal response")
		return 1
	}
	fmt.Fprintln(stdout, string(buf))

	if resp.Data == nil || *resp.Data == nil {
		return 1
	}
	return 0
}

func main() {
	os.Exit(Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
