package extractor

import (
	"reflect"
	"testing"
)

func topicP(text string) Paragraph {
	return Paragraph{Text: text, Style: StyleTopicHeading, StyleName: "Heading 2"}
}

func subP(text string) Paragraph {
	return Paragraph{Text: text, Style: StyleSubtopicHeading, StyleName: "Heading 3"}
}

func bodyP(text string) Paragraph {
	return Paragraph{Text: text, StyleName: "Normal"}
}

func skipP(text string) Paragraph {
	return Paragraph{Text: text, Style: StyleSkip, StyleName: "TOC 1"}
}

func TestBuildTree_TopicsAndSubtopics(t *testing.T) {
	tree := BuildTree([]Paragraph{
		topicP("Scope of Work"),
		bodyP("General scope line."),
		subP("Materials"),
		bodyP("Cement shall be OPC 53 grade."),
		bodyP("Sand shall be river sand."),
		subP("Workmanship"),
		bodyP("All work per IS codes."),
		topicP("Payment Terms"),
		bodyP("Payment within 30 days."),
	}, nil)

	if got := tree.Topics.Names(); !reflect.DeepEqual(got, []string{"Scope of Work", "Payment Terms"}) {
		t.Fatalf("expected two topics in document order, got %v", got)
	}

	scope, _ := tree.Topics.Get("Scope of Work")
	if scope.Text != "General scope line." {
		t.Errorf("expected body before first subtopic in topic text, got %q", scope.Text)
	}
	if got := scope.Subtopics.Names(); !reflect.DeepEqual(got, []string{"Materials", "Workmanship"}) {
		t.Fatalf("expected subtopics in order, got %v", got)
	}
	mat, _ := scope.Subtopics.Get("Materials")
	if want := "Cement shall be OPC 53 grade.\nSand shall be river sand."; mat.Text != want {
		t.Errorf("expected buffered paragraphs joined by newline, got %q", mat.Text)
	}
	work, _ := scope.Subtopics.Get("Workmanship")
	if work.Text != "All work per IS codes." {
		t.Errorf("expected end flush into last subtopic, got %q", work.Text)
	}

	pay, _ := tree.Topics.Get("Payment Terms")
	if pay.Text != "Payment within 30 days." {
		t.Errorf("expected topic body, got %q", pay.Text)
	}
	if pay.Subtopics.Len() != 0 {
		t.Errorf("expected empty subtopics map, got %v", pay.Subtopics.Names())
	}
}

func TestBuildTree_BlankParagraphsNeverFlush(t *testing.T) {
	tree := BuildTree([]Paragraph{
		topicP("Topic"),
		bodyP("first"),
		bodyP("   "),
		bodyP(""),
		bodyP("second"),
	}, nil)
	n, _ := tree.Topics.Get("Topic")
	if n.Text != "first\nsecond" {
		t.Errorf("expected blanks skipped without flushing, got %q", n.Text)
	}
}

func TestBuildTree_SkipStylesIgnored(t *testing.T) {
	tree := BuildTree([]Paragraph{
		skipP("Contents"),
		topicP("Topic"),
		bodyP("keep"),
		{Text: "page 3 of 12", Style: StyleSkip, StyleName: "Footer"},
		bodyP("also keep"),
	}, nil)
	if tree.Topics.Len() != 1 {
		t.Fatalf("expected skip styles to never become topics, got %v", tree.Topics.Names())
	}
	n, _ := tree.Topics.Get("Topic")
	if n.Text != "keep\nalso keep" {
		t.Errorf("expected furniture dropped from body, got %q", n.Text)
	}
}

func TestBuildTree_BodyBeforeFirstTopicDiscarded(t *testing.T) {
	tree := BuildTree([]Paragraph{
		bodyP("preamble to nowhere"),
		topicP("Topic"),
		bodyP("kept"),
	}, nil)
	n, _ := tree.Topics.Get("Topic")
	if n.Text != "kept" {
		t.Errorf("expected preamble discarded, got %q", n.Text)
	}
}

func TestBuildTree_SubtopicWithoutTopicIgnored(t *testing.T) {
	tree := BuildTree([]Paragraph{
		subP("Orphan"),
		bodyP("orphan body"),
		topicP("Topic"),
		bodyP("kept"),
	}, nil)
	if tree.Topics.Len() != 1 {
		t.Fatalf("expected orphan subtopic dropped, got %v", tree.Topics.Names())
	}
	n, _ := tree.Topics.Get("Topic")
	if n.Subtopics.Len() != 0 {
		t.Errorf("expected no subtopics, got %v", n.Subtopics.Names())
	}
	if n.Text != "kept" {
		t.Errorf("expected only post-topic body, got %q", n.Text)
	}
}

func TestBuildTree_TopicFilter(t *testing.T) {
	tree := BuildTree([]Paragraph{
		topicP("Keep Me"),
		bodyP("kept body"),
		topicP("Drop Me"),
		bodyP("dropped body"),
		subP("Dropped Sub"),
		bodyP("more dropped"),
		topicP("Also Keep"),
		bodyP("second kept"),
	}, []string{"Keep Me", " Also Keep "})

	if got := tree.Topics.Names(); !reflect.DeepEqual(got, []string{"Keep Me", "Also Keep"}) {
		t.Fatalf("expected only allow-listed topics, got %v", got)
	}
	keep, _ := tree.Topics.Get("Keep Me")
	if keep.Text != "kept body" {
		t.Errorf("expected kept topic body intact, got %q", keep.Text)
	}
	also, _ := tree.Topics.Get("Also Keep")
	if also.Text != "second kept" {
		t.Errorf("expected body after dropped topic to land in next kept topic, got %q", also.Text)
	}
}

func TestBuildTree_TopicFilterCaseInsensitive(t *testing.T) {
	tree := BuildTree([]Paragraph{
		topicP("Materials Info"),
		bodyP("kept"),
		topicP("Scope"),
		bodyP("dropped"),
	}, []string{"MATERIALS INFO"})

	if got := tree.Topics.Names(); !reflect.DeepEqual(got, []string{"Materials Info"}) {
		t.Fatalf("expected case-insensitive allow-list match, got %v", got)
	}
	n, _ := tree.Topics.Get("Materials Info")
	if n.Text != "kept" {
		t.Errorf("expected kept body under original heading, got %q", n.Text)
	}
}

func TestBuildTree_DuplicateTopicLastWins(t *testing.T) {
	tree := BuildTree([]Paragraph{
		topicP("Topic"),
		bodyP("first version"),
		topicP("Other"),
		topicP("Topic"),
		bodyP("second version"),
	}, nil)

	if got := tree.Topics.Names(); !reflect.DeepEqual(got, []string{"Topic", "Other"}) {
		t.Fatalf("expected duplicate to keep original position, got %v", got)
	}
	n, _ := tree.Topics.Get("Topic")
	if n.Text != "second version" {
		t.Errorf("expected last occurrence to win, got %q", n.Text)
	}
}

func TestBuildTree_EmptyDocument(t *testing.T) {
	tree := BuildTree(nil, nil)
	if tree.Topics.Len() != 0 {
		t.Errorf("expected empty tree, got %v", tree.Topics.Names())
	}
}

func TestBuildTree_TopicWithNoBody(t *testing.T) {
	tree := BuildTree([]Paragraph{
		topicP("Empty Topic"),
		topicP("Next"),
		bodyP("next body"),
	}, nil)
	n, _ := tree.Topics.Get("Empty Topic")
	if n == nil {
		t.Fatalf("expected empty topic present")
	}
	if n.Text != "" || n.Subtopics.Len() != 0 {
		t.Errorf("expected empty text and subtopics, got %q / %v", n.Text, n.Subtopics.Names())
	}
}

func TestBuildTree_SubtopicRunsDoNotLeakAcrossTopics(t *testing.T) {
	tree := BuildTree([]Paragraph{
		topicP("A"),
		subP("A1"),
		bodyP("a1 body"),
		topicP("B"),
		bodyP("b body"),
	}, nil)

	a, _ := tree.Topics.Get("A")
	a1, _ := a.Subtopics.Get("A1")
	if a1.Text != "a1 body" {
		t.Errorf("expected flush into previous subtopic on topic change, got %q", a1.Text)
	}
	b, _ := tree.Topics.Get("B")
	if b.Text != "b body" {
		t.Errorf("expected new topic to collect its own body, got %q", b.Text)
	}
	if b.Subtopics.Len() != 0 {
		t.Errorf("expected subtopic state reset on new topic, got %v", b.Subtopics.Names())
	}
}
