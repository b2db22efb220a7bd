package nexus

import (
	"bytes"
	"strings"
	"testing"

	"github.com/isisarantes/Biallelic-SNP/internal/recode"
	"github.com/isisarantes/Biallelic-SNP/internal/species"
)

func testTable(t *testing.T) *species.Table {
	t.Helper()
	tbl, err := species.Load(strings.NewReader("duck ind1\nduck ind2\ngoose ind3\n"))
	if err != nil {
		t.Fatal(err)
	}
	return tbl
}

func TestWrite(t *testing.T) {
	buf := &bytes.Buffer{}
	m := &recode.Matrix{
		Taxa: []string{"ind1", "ind2", "ind3"},
		Rows: [][]byte{
			[]byte("012-"),
			[]byte("210-"),
			[]byte("1-02"),
		},
	}
	if err := Write(buf, m, testTable(t), "made for testing"); err != nil {
		t.Fatal(err)
	}
	want := "#NEXUS\n" +
		"\n" +
		"[made for testing]\n" +
		"Begin data;\n" +
		"\tDimensions ntax=3 nchar=4;\n" +
		"\tFormat datatype=integerdata symbols='012' gap=-;\n" +
		"\tMatrix\n" +
		"ind1_duck\t012-\n" +
		"ind2_duck\t210-\n" +
		"ind3_goose\t1-02\n" +
		"\t;\n" +
		"End;\n"
	if got := buf.String(); got != want {
		t.Fatalf("mismatch\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestWrite_NoAnnotation(t *testing.T) {
	buf := &bytes.Buffer{}
	m := &recode.Matrix{
		Taxa: []string{"ind1", "ind2", "ind3"},
		Rows: [][]byte{nil, nil, nil},
	}
	if err := Write(buf, m, testTable(t), ""); err != nil {
		t.Fatal(err)
	}
	got := buf.String()
	if strings.Contains(got, "[") {
		t.Fatalf("suppressed annotation still present:\n%s", got)
	}
	if !strings.Contains(got, "Dimensions ntax=3 nchar=0;") {
		t.Fatalf("empty matrix header wrong:\n%s", got)
	}
}

func TestWrite_UnknownSpecimen(t *testing.T) {
	m := &recode.Matrix{
		Taxa: []string{"stranger"},
		Rows: [][]byte{[]byte("0")},
	}
	err := Write(&bytes.Buffer{}, m, testTable(t), "")
	if err == nil || !strings.Contains(err.Error(), "stranger") {
		t.Fatalf("err = %v, want the unknown specimen named", err)
	}
}
