package entity

import "testing"

func TestSubmissionBindNormalizesEmail(t *testing.T) {
	sub := &Submission{Email: "  User@Example.COM "}
	if err := sub.Bind(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.Email != "user@example.com" {
		t.Errorf("email = %q, want user@example.com", sub.Email)
	}
}

func TestSubmissionBindRejectsBadEmail(t *testing.T) {
	cases := []string{"", "not-an-email", "missing@tld@twice"}
	for _, email := range cases {
		sub := &Submission{Email: email}
		if err := sub.Bind(nil); err == nil {
			t.Errorf("email %q accepted, want error", email)
		}
	}
}

func TestSubmissionBindNormalizesCountry(t *testing.T) {
	sub := &Submission{Email: "user@example.com", Country: "Germany"}
	if err := sub.Bind(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.Country != "DE" {
		t.Errorf("country = %q, want DE", sub.Country)
	}
}

func TestSubmissionBindRejectsUnknownCountry(t *testing.T) {
	sub := &Submission{Email: "user@example.com", Country: "Atlantis"}
	if err := sub.Bind(nil); err == nil {
		t.Error("unknown country accepted, want error")
	}
}

func TestModeRequestBind(t *testing.T) {
	valid := []Mode{ModeCollection, ModeLive}
	for _, mode := range valid {
		req := &ModeRequest{Mode: mode}
		if err := req.Bind(nil); err != nil {
			t.Errorf("mode %q rejected: %v", mode, err)
		}
	}

	req := &ModeRequest{Mode: "not_a_real_mode"}
	if err := req.Bind(nil); err != ErrInvalidMode {
		t.Errorf("error = %v, want ErrInvalidMode", err)
	}
}
