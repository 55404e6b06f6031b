package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nfrund/examwhispers/cmd/whispers-cli/internal/topics"
	"github.com/nfrund/examwhispers/internal/topicmgr"
)

func newTopicsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "topics",
		Short: "Explore the message bus topics",
		Long: `The topics command lists the topics the server publishes on: auth state
changes, rendered auth views, websocket connections and study history.

Examples:
  # List all topics
  whispers-cli topics list

  # Framework-level topics only, as JSON
  whispers-cli topics list --scope=framework --format=json

  # Details of one topic
  whispers-cli topics get auth.state.changed`,
	}
	cmd.AddCommand(newTopicsListCmd(), newTopicsGetCmd())
	return cmd
}

func newTopicsListCmd() *cobra.Command {
	var format, module, scope string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all registered topics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager := topics.Catalogue()
			list := manager.List()

			if scope != "" {
				parsed := parseScope(scope)
				if parsed == "" {
					return fmt.Errorf("invalid scope %q, valid scopes: framework, module", scope)
				}
				list = filterTopics(list, func(t topicmgr.Topic) bool { return t.Scope() == parsed })
			}
			if module != "" {
				list = filterTopics(list, func(t topicmgr.Topic) bool { return t.Module() == module })
			}

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				return topics.DisplayTopicsJSON(out, list)
			case "table":
				if len(list) == 0 {
					fmt.Fprintln(out, "No topics found")
					return nil
				}
				return topics.DisplayTopicsTable(out, list)
			default:
				return fmt.Errorf("unsupported output format %q, use table or json", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, json)")
	cmd.Flags().StringVarP(&module, "module", "m", "", "Filter topics by module name")
	cmd.Flags().StringVarP(&scope, "scope", "s", "", "Filter topics by scope (framework, module)")
	return cmd
}

func newTopicsGetCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "get <topic-name>",
		Short: "Get detailed information about a specific topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			topic, found := topics.Catalogue().Get(args[0])
			if !found {
				return fmt.Errorf("topic %q not found, use 'whispers-cli topics list' to see all topics", args[0])
			}
			return topics.DisplayTopicDetails(cmd.OutOrStdout(), topic, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, json)")
	return cmd
}

// parseScope converts string scope to topicmgr.TopicScope
func parseScope(scopeStr string) topicmgr.TopicScope {
	switch strings.ToLower(scopeStr) {
	case "framework":
		return topicmgr.ScopeFramework
	case "module":
		return topicmgr.ScopeModule
	default:
		return ""
	}
}

func filterTopics(list []topicmgr.Topic, keep func(topicmgr.Topic) bool) []topicmgr.Topic {
	filtered := make([]topicmgr.Topic, 0, len(list))
	for _, t := range list {
		if keep(t) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}
