package docs

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func TestTopics(t *testing.T) {
	// This test ensures that the documentation is in sync with the code.
	// It checks two things:
	// 1. Every topic listed in readme.md can be successfully loaded.
	// 2. Every .md file (excluding readme.md itself) is listed in readme.md.

	// Read readme.md line by line and extract topics using regex.
	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	defer file.Close()

	var topicsInReadme []string
	scanner := bufio.NewScanner(file)
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)

	for scanner.Scan() {
		line := scanner.Text()
		matches := topicRegex.FindStringSubmatch(line)
		if len(matches) > 1 {
			topic := strings.TrimSpace(matches[1])
			topic = strings.Trim(topic, "`")
			topicsInReadme = append(topicsInReadme, topic)
		}
	}

	if err := scanner.Err(); err != nil {
		t.Fatalf("error scanning readme.md: %v", err)
	}

	// Check 1: Every topic listed in readme.md can be successfully loaded.
	for _, topic := range topicsInReadme {
		t.Run("load_"+topic, func(t *testing.T) {
			_, err := GetTopic(topic)
			if err != nil {
				t.Errorf("failed to get topic %q: %v", topic, err)
			}
		})
	}

	// Check 2: Every .md file (excluding readme.md) is listed in readme.md.
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatalf("failed to glob *.md: %v", err)
	}

	for _, f := range files {
		base := filepath.Base(f)
		if base == "readme.md" {
			continue
		}
		name := strings.TrimSuffix(base, ".md")
		found := false
		for _, topic := range topicsInReadme {
			if topic == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("topic %q is not listed in readme.md", name)
		}
	}
}

func TestGetAllTopics(t *testing.T) {
	topics, err := GetAllTopics()
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"dataset", "matching", "metrics"} {
		found := false
		for _, topic := range topics {
			if topic == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("topic %q missing from GetAllTopics: %v", want, topics)
		}
	}
	// readme is the index, not a topic
	for _, topic := range topics {
		if topic == "readme" {
			t.Error("readme should not be listed as a topic")
		}
	}
}

func TestGetTopicsStar(t *testing.T) {
	all, err := GetTopics("*")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"# Metrics", "# Name matching", "# Dataset"} {
		if !strings.Contains(all, want) {
			t.Errorf("expanded topics miss %q", want)
		}
	}
}

// TestMarkdownStructure parses every topic file and checks its structure:
// it must parse, start with a level-1 heading, and fenced code blocks must
// carry a known language tag.
func TestMarkdownStructure(t *testing.T) {
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}

	known := map[string]bool{"bash": true, "console": true, "json": true, "csv": true, "yaml": true}

	for _, file := range files {
		t.Run(file, func(t *testing.T) {
			content, err := os.ReadFile(file)
			if err != nil {
				t.Fatal(err)
			}

			root := goldmark.DefaultParser().Parse(text.NewReader(content))

			first := root.FirstChild()
			h, ok := first.(*ast.Heading)
			if !ok || h.Level != 1 {
				t.Errorf("%s must start with a level-1 heading", file)
			}

			ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
				if !entering {
					return ast.WalkContinue, nil
				}
				if fcb, ok := n.(*ast.FencedCodeBlock); ok {
					if fcb.Info == nil {
						t.Errorf("%s: fenced code block without a language tag", file)
						return ast.WalkContinue, nil
					}
					lang := string(fcb.Info.Segment.Value(content))
					if !known[lang] {
						t.Errorf("%s: unknown code block language %q", file, lang)
					}
				}
				return ast.WalkContinue, nil
			})
		})
	}
}
