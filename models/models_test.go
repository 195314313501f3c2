package models

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
)

func TestObjectKey(t *testing.T) {
	projectID := uuid.MustParse("11111111-2222-3333-4444-555555555555")
	fileID := uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee")

	got := ObjectKey(projectID, FileTypeImport, fileID, ".csv")
	want := fmt.Sprintf("files/%s/%s/%s.csv", projectID, FileTypeImport, fileID)
	if got != want {
		t.Errorf("ObjectKey = %q, want %q", got, want)
	}

	if got := ObjectKey(projectID, FileTypeSupportingDocument, fileID, ""); got != fmt.Sprintf("files/%s/%s/%s", projectID, FileTypeSupportingDocument, fileID) {
		t.Errorf("ObjectKey without extension = %q", got)
	}
}

func TestValidContactExpiry(t *testing.T) {
	valid := []int{30, 60, 90, 180, 360}
	for _, v := range valid {
		if !ValidContactExpiry(v) {
			t.Errorf("ValidContactExpiry(%d) = false, want true", v)
		}
	}

	invalid := []int{0, -30, 15, 45, 361, 390}
	for _, v := range invalid {
		if ValidContactExpiry(v) {
			t.Errorf("ValidContactExpiry(%d) = true, want false", v)
		}
	}
}

func TestDedupeKey(t *testing.T) {
	cases := []struct {
		name, domain, want string
	}{
		{"Acme Corp", "acme.example", "acmecorp|acme.example"},
		{"Acme Corp.", "www.acme.example", "acmecorp|acme.example"},
		{"ACME-CORP", "ACME.EXAMPLE", "acmecorp|acme.example"},
		{"  Acme Corp  ", "", "acmecorp"},
		{"", "acme.example", "|acme.example"},
	}

	for _, tc := range cases {
		if got := DedupeKey(tc.name, tc.domain); got != tc.want {
			t.Errorf("DedupeKey(%q, %q) = %q, want %q", tc.name, tc.domain, got, tc.want)
		}
	}
}
