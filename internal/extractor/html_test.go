package extractor

import (
	"strings"
	"testing"
)

func TestHTML_ExtractTree(t *testing.T) {
	input := `<html>
<head><title>Spec</title><style>body { color: red; }</style></head>
<body>
<nav><p>Home | About</p></nav>
<h1>Construction Specification</h1>
<p>Preamble before any topic.</p>
<h2>Scope of Work</h2>
<p>General scope line.</p>
<h3>Materials</h3>
<p>Cement shall be OPC 53 grade.</p>
<ul><li>River sand only.</li></ul>
<h2>Payment Terms</h2>
<p>Payment within 30 days.</p>
<footer><p>page 1</p></footer>
</body>
</html>`

	tree, err := Extract(strings.NewReader(input), "spec.html", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	names := tree.Topics.Names()
	if len(names) != 2 || names[0] != "Scope of Work" || names[1] != "Payment Terms" {
		t.Fatalf("expected h2 topics in order, got %v", names)
	}

	scope, _ := tree.Topics.Get("Scope of Work")
	if scope.Text != "General scope line." {
		t.Errorf("expected topic body, got %q", scope.Text)
	}
	mat, ok := scope.Subtopics.Get("Materials")
	if !ok {
		t.Fatalf("expected h3 subtopic, got %v", scope.Subtopics.Names())
	}
	if !strings.Contains(mat.Text, "Cement shall be OPC 53 grade.") {
		t.Errorf("expected paragraph in subtopic body, got %q", mat.Text)
	}
	if !strings.Contains(mat.Text, "River sand only.") {
		t.Errorf("expected list item in subtopic body, got %q", mat.Text)
	}

	pay, _ := tree.Topics.Get("Payment Terms")
	if strings.Contains(pay.Text, "page 1") {
		t.Errorf("expected footer content skipped, got %q", pay.Text)
	}
	for _, topic := range names {
		if strings.Contains(topic, "Home") {
			t.Errorf("expected nav content skipped, got topic %q", topic)
		}
	}
}

func TestHTML_ScriptAndStyleSkipped(t *testing.T) {
	input := `<body><h2>Topic</h2><script>var x = 1;</script><p>real</p></body>`
	tree, err := Extract(strings.NewReader(input), "x.htm", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n, _ := tree.Topics.Get("Topic")
	if n.Text != "real" {
		t.Errorf("expected script content excluded, got %q", n.Text)
	}
}

func TestHTML_HeadingOutsideTopicLevelsIsBody(t *testing.T) {
	input := `<body><h2>Topic</h2><h4>Not a subtopic</h4><p>body</p></body>`
	tree, err := Extract(strings.NewReader(input), "x.html", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n, _ := tree.Topics.Get("Topic")
	if n.Subtopics.Len() != 0 {
		t.Errorf("expected h4 not to open a subtopic, got %v", n.Subtopics.Names())
	}
	if !strings.Contains(n.Text, "Not a subtopic") {
		t.Errorf("expected h4 text folded into body, got %q", n.Text)
	}
}
