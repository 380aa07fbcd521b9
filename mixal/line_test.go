package mixal

import "testing"

func TestParseLine_Comment(t *testing.T) {
	ln, err := ParseLine("* this is a comment")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ln.Comment {
		t.Error("expected a line starting with * to be a comment")
	}
}

func TestParseLine_Blank(t *testing.T) {
	ln, err := ParseLine("   ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ln.Op != "" || ln.Loc != "" {
		t.Errorf("expected an empty Line for blank input, got %+v", ln)
	}
}

func TestParseLine_LabelOpAddress(t *testing.T) {
	ln, err := ParseLine("START LDA  2000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ln.Loc != "START" {
		t.Errorf("expected Loc=START, got %q", ln.Loc)
	}
	if ln.Op != "LDA" {
		t.Errorf("expected Op=LDA, got %q", ln.Op)
	}
	if ln.Address != "2000" {
		t.Errorf("expected Address=2000, got %q", ln.Address)
	}
}

func TestParseLine_NoLabel(t *testing.T) {
	ln, err := ParseLine(" STA  3000,1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ln.Loc != "" {
		t.Errorf("expected no label, got %q", ln.Loc)
	}
	if ln.Op != "STA" {
		t.Errorf("expected Op=STA, got %q", ln.Op)
	}
	if ln.Address != "3000,1" {
		t.Errorf("expected Address=3000,1, got %q", ln.Address)
	}
}

func TestParseLine_OpOnly(t *testing.T) {
	ln, err := ParseLine("HERE HLT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ln.Op != "HLT" {
		t.Errorf("expected Op=HLT, got %q", ln.Op)
	}
	if ln.Address != "" {
		t.Errorf("expected no address, got %q", ln.Address)
	}
}
