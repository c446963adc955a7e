package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blackcoderx/reqport/pkg/export"
	"github.com/blackcoderx/reqport/pkg/request"
	"github.com/blackcoderx/reqport/pkg/sink"
	"github.com/blackcoderx/reqport/pkg/storage"
	"github.com/blackcoderx/reqport/pkg/tui"
)

var errNoSource = errors.New("no requests given: use --request, --collection, --all or --url")

type exportOptions struct {
	requests   []string
	collection string
	all        bool
	env        string

	url     string
	method  string
	headers []string
	data    string
	bearer  string
	basic   string
	save    string

	name     string
	copy     bool
	out      string
	download bool
	force    bool
	validate bool
	plain    bool
}

func newExportCmd(a *app) *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export [target]",
		Short: "Export requests as curl, httpie, postman, insomnia, fetch or python",
		Long: `Export one or more requests to a target format.

Requests come from saved files (--request, --all), a saved collection
(--collection) or the command line (--url with -X, -H and -d).
Without a target argument you are asked to pick one, or the configured
default_target is used when not running in a terminal.`,
		Example: `  reqport export curl -r "Create User" -e dev
  reqport export postman --all --download
  reqport export python -u https://api.example.com/users -X POST -H "Content-Type: application/json" -d '{"name":"Ada"}'`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: targetNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runExport(cmd, args, opts)
		},
	}

	f := cmd.Flags()
	f.StringArrayVarP(&opts.requests, "request", "r", nil, "saved request name (repeatable)")
	f.StringVarP(&opts.collection, "collection", "c", "", "saved collection name")
	f.BoolVar(&opts.all, "all", false, "export every saved request")
	f.StringVarP(&opts.env, "env", "e", "", "environment to use for variable substitution")

	f.StringVarP(&opts.url, "url", "u", "", "inline request URL")
	f.StringVarP(&opts.method, "method", "X", "GET", "inline request method")
	f.StringArrayVarP(&opts.headers, "header", "H", nil, `inline header "Name: Value" (repeatable)`)
	f.StringVarP(&opts.data, "data", "d", "", "inline request body")
	f.StringVar(&opts.bearer, "bearer", "", "inline bearer token for the Authorization header")
	f.StringVar(&opts.basic, "basic", "", `inline Basic auth credentials "user:password"`)
	f.StringVar(&opts.save, "save", "", "save the inline request under this name")

	f.StringVar(&opts.name, "name", "", "collection name for postman and insomnia exports")
	f.BoolVar(&opts.copy, "copy", false, "copy the result to the clipboard")
	f.StringVarP(&opts.out, "out", "o", "", "write the result to this file")
	f.BoolVar(&opts.download, "download", false, "write the result to output_dir using the target's file name")
	f.BoolVar(&opts.force, "force", false, "overwrite existing files without asking")
	f.BoolVar(&opts.validate, "validate", false, "validate postman output against the collection schema")
	f.BoolVar(&opts.plain, "plain", false, "print without syntax highlighting")

	return cmd
}

func targetNames() []string {
	targets := export.Targets()
	names := make([]string, len(targets))
	for i, t := range targets {
		names[i] = t.String()
	}
	return names
}

func (a *app) runExport(cmd *cobra.Command, args []string, opts *exportOptions) error {
	target, err := a.resolveTarget(args)
	if err != nil {
		return err
	}

	reqs, collectionName, err := a.gatherRequests(opts)
	if err != nil {
		return err
	}

	if opts.env != "" {
		env, err := storage.LoadEnvironment(storage.EnvironmentPath(a.folder(), opts.env))
		if err != nil {
			return fmt.Errorf("failed to load environment '%s': %w", opts.env, err)
		}
		for i := range reqs {
			reqs[i] = *storage.ApplyEnvironment(&reqs[i], env)
		}
	}

	cfgs := make([]request.Config, 0, len(reqs))
	for i := range reqs {
		cfg, err := reqs[i].ToConfig()
		if err != nil {
			return err
		}
		cfgs = append(cfgs, cfg)
	}

	if opts.name != "" {
		collectionName = opts.name
	}
	exporter := export.NewExporter(collectionName)

	artifact, err := exporter.Render(target, cfgs)
	if err != nil {
		return err
	}
	a.logger.Debug("rendered export",
		zap.String("target", target.String()),
		zap.Int("requests", len(cfgs)),
		zap.Int("bytes", len(artifact.Content)),
	)

	if opts.validate {
		if target != export.TargetPostman {
			return fmt.Errorf("--validate only applies to the postman target")
		}
		if err := export.ValidatePostman([]byte(artifact.Content)); err != nil {
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), tui.Success("collection matches the Postman v2.1 schema"))
	}

	return a.deliver(cmd, artifact, opts)
}

// resolveTarget picks the export target from the argument, a prompt or the
// configured default.
func (a *app) resolveTarget(args []string) (export.Target, error) {
	if len(args) == 1 {
		return export.ParseTarget(args[0])
	}

	def, err := export.ParseTarget(a.settings.DefaultTarget)
	if err != nil {
		return 0, err
	}
	if !a.interactive() {
		return def, nil
	}
	return tui.SelectTarget(def)
}

// gatherRequests collects requests in order: collection, saved requests,
// then the inline request. It also returns the collection name to use.
func (a *app) gatherRequests(opts *exportOptions) ([]storage.Request, string, error) {
	var reqs []storage.Request
	name := a.settings.CollectionName
	dir := a.folder()

	if opts.collection != "" {
		c, err := storage.LoadCollection(storage.CollectionPath(dir, opts.collection))
		if err != nil {
			return nil, "", fmt.Errorf("failed to load collection '%s': %w", opts.collection, err)
		}
		reqs = append(reqs, c.Requests...)
		name = c.Name
	}

	names := opts.requests
	if opts.all {
		all, err := storage.ListRequests(dir)
		if err != nil {
			return nil, "", err
		}
		names = append(names, all...)
	}
	for _, n := range names {
		req, err := storage.FindRequest(dir, n)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load request '%s': %w", n, err)
		}
		reqs = append(reqs, *req)
	}

	if opts.url != "" {
		req, err := a.inlineRequest(opts)
		if err != nil {
			return nil, "", err
		}
		reqs = append(reqs, req)
	}

	if len(reqs) == 0 {
		return nil, "", errNoSource
	}
	return reqs, name, nil
}

func (a *app) inlineRequest(opts *exportOptions) (storage.Request, error) {
	cfg := request.New(request.ParseMethod(opts.method), opts.url, request.WithBody(opts.data))
	for _, h := range opts.headers {
		name, value, err := parseHeader(h)
		if err != nil {
			return storage.Request{}, err
		}
		cfg.Headers = cfg.Headers.Set(name, value)
	}
	switch {
	case opts.bearer != "" && opts.basic != "":
		return storage.Request{}, fmt.Errorf("--bearer and --basic are mutually exclusive")
	case opts.bearer != "":
		request.WithBearerAuth(opts.bearer)(&cfg)
	case opts.basic != "":
		user, pass, ok := strings.Cut(opts.basic, ":")
		if !ok || user == "" {
			return storage.Request{}, fmt.Errorf("invalid --basic value: expected \"user:password\"")
		}
		request.WithBasicAuth(user, pass)(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return storage.Request{}, err
	}

	req := storage.FromConfig(opts.save, cfg)
	if opts.save != "" {
		path := storage.RequestPath(a.folder(), opts.save)
		if err := storage.SaveRequest(req, path); err != nil {
			return storage.Request{}, err
		}
		a.logger.Debug("saved inline request", zap.String("path", path))
	}
	if req.Name == "" {
		req.Name = "inline"
	}
	return req, nil
}

// parseHeader splits a curl-style "Name: Value" header.
func parseHeader(h string) (string, string, error) {
	name, value, ok := strings.Cut(h, ":")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", "", fmt.Errorf("invalid header %q: expected \"Name: Value\"", h)
	}
	return name, strings.TrimSpace(value), nil
}

// deliver sends the artifact to the requested sinks, or prints it when none
// was chosen.
func (a *app) deliver(cmd *cobra.Command, artifact export.Artifact, opts *exportOptions) error {
	stderr := cmd.ErrOrStderr()
	delivered := false

	if opts.copy {
		if err := sink.NewClipboard(a.logger).Copy(artifact.Content); err != nil {
			return err
		}
		fmt.Fprintln(stderr, tui.Success("copied "+artifact.Target.String()+" export to clipboard"))
		delivered = true
	}

	path := opts.out
	if path == "" && opts.download {
		path = filepath.Join(a.settings.OutputDir, artifact.Filename)
	}
	if path != "" {
		files := sink.NewFileSink(a.root, a.confirmFunc(opts.force), a.logger)
		res, err := files.Download(artifact, path)
		if err != nil {
			if errors.Is(err, sink.ErrOverwriteRejected) && !a.interactive() {
				fmt.Fprintln(stderr, tui.Hint("use --force to overwrite"))
			}
			return err
		}
		switch {
		case res.Unchanged:
			fmt.Fprintln(stderr, tui.Success(tui.Path(path)+" is already up to date"))
		case res.Created:
			fmt.Fprintln(stderr, tui.Success("wrote "+tui.Path(path)))
		default:
			fmt.Fprintln(stderr, tui.Success("updated "+tui.Path(path)))
		}
		delivered = true
	}

	if delivered {
		return nil
	}

	out := artifact.Content
	if !opts.plain && isTerminal(cmd.OutOrStdout()) {
		out = tui.RenderArtifact(artifact, a.settings.Theme)
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func (a *app) confirmFunc(force bool) sink.ConfirmFunc {
	switch {
	case force:
		return func(sink.Overwrite) bool { return true }
	case a.interactive():
		return tui.ConfirmOverwrite
	default:
		return nil
	}
}

func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
