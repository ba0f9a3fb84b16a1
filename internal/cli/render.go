package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-fishlist/internal/logging"
	"github.com/goliatone/go-fishlist/pkg/document"
)

type renderFlags struct {
	fragment bool
	host     string
	output   string
}

func newRenderCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the collection as a page or fragment",
		Long: `Render the collection as a full HTML page (default), as a bare list
fragment (--fragment), or append it into the container of an existing host
page (--host). Output goes to stdout unless --output is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.fragment, "fragment", false, "emit only the list fragment")
	cmd.Flags().StringVar(&flags.host, "host", "", "existing HTML page to append the list into")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().String("title", "", "page title")
	cmd.Flags().String("container-id", "", "id of the element the list is appended to")
	cmd.MarkFlagsMutuallyExclusive("fragment", "host")

	return cmd
}

func runRender(cmd *cobra.Command, flags renderFlags) error {
	ctx := cmd.Context()
	cfg, err := configFrom(cmd)
	if err != nil {
		return err
	}
	logger := logging.FromContext(ctx)

	a, err := openApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	var out bytes.Buffer
	switch {
	case flags.fragment:
		orch, err := a.orchestrator(document.NewWriterTarget(&out))
		if err != nil {
			return err
		}
		if err := orch.RenderCollection(ctx, a.request()); err != nil {
			return err
		}
	case flags.host != "":
		page, err := os.ReadFile(flags.host)
		if err != nil {
			return fmt.Errorf("cli: read host page: %w", err)
		}
		doc, err := document.ParseBytes(page)
		if err != nil {
			return err
		}
		orch, err := a.orchestrator(doc.Target(a.shell().ContainerIDOrDefault()))
		if err != nil {
			return err
		}
		if err := orch.RenderCollection(ctx, a.request()); err != nil {
			return err
		}
		if err := doc.Render(&out); err != nil {
			return fmt.Errorf("cli: render host page: %w", err)
		}
	default:
		orch, err := a.orchestrator(nil)
		if err != nil {
			return err
		}
		page, err := orch.RenderPage(ctx, a.request(), a.shell())
		if err != nil {
			return err
		}
		out.Write(page)
	}

	return writeOutput(cmd.OutOrStdout(), flags.output, out.Bytes())
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cli: write %s: %w", path, err)
	}
	return nil
}
