package variant

import "testing"

func TestNormalizeChrom(t *testing.T) {
	tests := []struct {
		chrom string
		want  string
	}{
		{"12", "12"},
		{"chr12", "12"},
		{"chrX", "X"},
		{"x", "X"},
		{"chrM", "MT"},
		{"M", "MT"},
		{"MT", "MT"},
		{"CHR7", "7"},
	}
	for _, tt := range tests {
		t.Run(tt.chrom, func(t *testing.T) {
			v := Identity{Chrom: tt.chrom}
			if got := v.NormalizeChrom(); got != tt.want {
				t.Errorf("NormalizeChrom(%q) = %q, want %q", tt.chrom, got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		v       Identity
		wantErr bool
	}{
		{"valid snv", Identity{Chrom: "12", Pos: 25245350, Ref: "C", Alt: "A"}, false},
		{"valid with chr prefix", Identity{Chrom: "chr12", Pos: 1, Ref: "G", Alt: "T"}, false},
		{"valid rsid only", Identity{RSID: "rs202075563"}, false},
		{"valid mito", Identity{Chrom: "MT", Pos: 100, Ref: "A", Alt: "G"}, false},
		{"empty identity", Identity{}, true},
		{"zero position", Identity{Chrom: "1", Pos: 0, Ref: "A", Alt: "C"}, true},
		{"negative position", Identity{Chrom: "1", Pos: -5, Ref: "A", Alt: "C"}, true},
		{"unknown chromosome", Identity{Chrom: "99", Pos: 10, Ref: "A", Alt: "C"}, true},
		{"empty chromosome with position", Identity{Pos: 10, Ref: "A", Alt: "C"}, true},
		{"alt without ref", Identity{Chrom: "1", Pos: 10, Alt: "C"}, true},
		{"ref without alt is fine", Identity{Chrom: "1", Pos: 10, Ref: "A"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.v.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if _, ok := err.(*IdentityError); !ok {
					t.Errorf("Validate() error type = %T, want *IdentityError", err)
				}
			}
		})
	}
}

func TestNormalized(t *testing.T) {
	v := Identity{Chrom: "chr12", Pos: 25245350, Ref: "C", Alt: "A", RSID: " RS123 "}
	n := v.Normalized()
	if n.Chrom != "12" {
		t.Errorf("Normalized().Chrom = %q, want %q", n.Chrom, "12")
	}
	if n.RSID != "rs123" {
		t.Errorf("Normalized().RSID = %q, want %q", n.RSID, "rs123")
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		name string
		v    Identity
		want string
	}{
		{"snv", Identity{Chrom: "chr12", Pos: 25245350, Ref: "C", Alt: "A"}, "12:25245350:C>A"},
		{"rsid only", Identity{RSID: "rs123"}, "rs123"},
		{"no alt", Identity{Chrom: "1", Pos: 5, Ref: "A"}, "1:5:A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
