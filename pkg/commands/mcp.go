package commands

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/mindlog/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command) {
	var (
		transport string
		host      string
		port      int
		baseURL   string
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "start the Model Context Protocol server",
		Long: `Launch an MCP server that lets agents write entries, search the journal,
read and generate summaries, and chat about entries.`,
		Example: `
mindlog mcp
mindlog mcp --transport sse --port 8090
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := newService(true)
			if err != nil {
				return err
			}

			runner := mcp.Runner{
				App:     svc,
				Name:    "mindlog",
				Version: version,
			}

			switch strings.ToLower(strings.TrimSpace(transport)) {
			case "", string(mcp.TransportStdio):
				runner.Transport = mcp.TransportStdio
			case string(mcp.TransportSSE):
				if port < 0 || port > 65535 {
					return fmt.Errorf("invalid port %d", port)
				}
				h := strings.TrimSpace(host)
				if h == "" {
					h = "127.0.0.1"
				}
				runner.Transport = mcp.TransportSSE
				runner.SSEListenAddr = net.JoinHostPort(h, strconv.Itoa(port))
				runner.SSEBaseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
				runner.OnSSEListening = func(url string) {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "MCP SSE server listening on %s/sse\n", url)
				}
			default:
				return fmt.Errorf("unsupported transport %q (expected stdio or sse)", transport)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runner.Do(ctx)
		},
	}

	cmd.Flags().StringVar(&transport, "transport", string(mcp.TransportStdio), "transport to use: stdio or sse")
	cmd.Flags().StringVar(&host, "host", "127.0.0.1", "host/interface for the SSE transport")
	cmd.Flags().IntVar(&port, "port", 8080, "port for the SSE transport")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "public base URL advertised to SSE clients (defaults to http://host:port)")

	topLevel.AddCommand(cmd)
}
