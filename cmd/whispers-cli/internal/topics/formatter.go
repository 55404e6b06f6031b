package topics

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/nfrund/examwhispers/internal/topicmgr"
)

// TopicDisplay represents a topic for display purposes
type TopicDisplay struct {
	Name        string                 `json:"name"`
	Scope       string                 `json:"scope"`
	Module      string                 `json:"module"`
	Description string                 `json:"description"`
	Pattern     string                 `json:"pattern"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

func toDisplay(topic topicmgr.Topic) TopicDisplay {
	return TopicDisplay{
		Name:        topic.Name(),
		Scope:       string(topic.Scope()),
		Module:      topic.Module(),
		Description: topic.Description(),
		Pattern:     topic.Pattern(),
		Metadata:    topic.Metadata(),
	}
}

// DisplayTopicsTable writes topics as an aligned table.
func DisplayTopicsTable(out io.Writer, topics []topicmgr.Topic) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "NAME\tSCOPE\tMODULE\tDESCRIPTION")
	fmt.Fprintln(w, "----\t-----\t------\t-----------")
	for _, topic := range topics {
		module := topic.Module()
		if module == "" {
			module = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			topic.Name(),
			topic.Scope(),
			module,
			truncateString(topic.Description(), 50))
	}
	return w.Flush()
}

// DisplayTopicsJSON writes topics and their count as indented JSON.
func DisplayTopicsJSON(out io.Writer, topics []topicmgr.Topic) error {
	displays := make([]TopicDisplay, len(topics))
	for i, topic := range topics {
		displays[i] = toDisplay(topic)
	}

	output := struct {
		Topics []TopicDisplay `json:"topics"`
		Count  int            `json:"count"`
	}{
		Topics: displays,
		Count:  len(displays),
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// DisplayTopicDetails writes everything known about one topic.
func DisplayTopicDetails(out io.Writer, topic topicmgr.Topic, format string) error {
	if format == "json" {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(toDisplay(topic))
	}

	fmt.Fprintf(out, "Name:        %s\n", topic.Name())
	fmt.Fprintf(out, "Scope:       %s\n", topic.Scope())
	fmt.Fprintf(out, "Module:      %s\n", topic.Module())
	fmt.Fprintf(out, "Description: %s\n", topic.Description())
	fmt.Fprintf(out, "Pattern:     %s\n", topic.Pattern())

	metadata := topic.Metadata()
	if len(metadata) > 0 {
		keys := make([]string, 0, len(metadata))
		for k := range metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		fmt.Fprintln(out, "Metadata:")
		for _, k := range keys {
			fmt.Fprintf(out, "  %s: %v\n", k, metadata[k])
		}
	}
	return nil
}

// truncateString truncates a string to maxLen characters, adding "..." if truncated
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return "..."
	}
	return s[:maxLen-3] + "..."
}
