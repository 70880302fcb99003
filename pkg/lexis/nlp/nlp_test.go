package nlp

import "testing"

func TestProseTag(t *testing.T) {
	p := NewProse()

	tagged, err := p.Tag([]string{"cats", "chase", "mice"})
	if err != nil {
		t.Fatalf("Tag: %v", err)
	}
	if len(tagged) != 3 {
		t.Fatalf("got %d tagged tokens, want 3", len(tagged))
	}
	for _, tok := range tagged {
		if tok.Tag == "" {
			t.Errorf("token %q has empty tag", tok.Text)
		}
	}
}

func TestProseTagEmpty(t *testing.T) {
	p := NewProse()

	tagged, err := p.Tag(nil)
	if err != nil {
		t.Fatalf("Tag(nil): %v", err)
	}
	if len(tagged) != 0 {
		t.Errorf("got %d tokens, want 0", len(tagged))
	}
}

func TestProseSegment(t *testing.T) {
	p := NewProse()

	sentences, words, err := p.Segment("The cat sat. The dog barked loudly.")
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	if sentences != 2 {
		t.Errorf("sentences = %d, want 2", sentences)
	}
	if len(words) != 8 {
		t.Errorf("words = %d, want 8 (punctuation excluded)", len(words))
	}
}

func TestProseSegmentEmpty(t *testing.T) {
	p := NewProse()

	sentences, words, err := p.Segment("   ")
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	if sentences != 0 || len(words) != 0 {
		t.Errorf("got (%d, %d), want (0, 0)", sentences, len(words))
	}
}
