package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/jmylchreest/yumscrape/internal/config"
	"github.com/jmylchreest/yumscrape/pkg/recipe"
)

// readCSV returns every row of a CSV file.
func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer func() { _ = f.Close() }()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return rows
}

func sampleRecipe(cookingID string, categoryID int) recipe.Extracted {
	return recipe.Extracted{
		Info: recipe.CookingInfo{
			CookingID:   cookingID,
			Name:        "Pad Thai",
			Description: "Noodles, tamarind, peanuts",
			Servings:    "2",
			RootID:      categoryID,
		},
		Ingredients: []recipe.Ingredient{
			{Text: "rice noodles", CookingID: cookingID},
			{Text: "2 eggs", CookingID: cookingID},
		},
		Nutrition: []recipe.Nutrition{
			{Name: "fat", Quantity: "10g", CookingID: cookingID},
		},
	}
}

// --- Table Tests ---

func TestOpenTable_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "t.csv")

	tbl, err := OpenTable(path)
	if err != nil {
		t.Fatalf("OpenTable() error = %v", err)
	}
	if err := tbl.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %v", err)
	}
}

func TestTable_Append_NoHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.csv")

	tbl, err := OpenTable(path)
	if err != nil {
		t.Fatalf("OpenTable() error = %v", err)
	}
	if err := tbl.Append([]string{"a", "1"}, []string{"b", "2"}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := tbl.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	// Flushed rows are visible before Close.
	rows := readCSV(t, path)
	want := [][]string{{"a", "1"}, {"b", "2"}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %v, want %v", rows, want)
	}
	if tbl.Rows() != 2 {
		t.Errorf("Rows() = %d, want 2", tbl.Rows())
	}
	_ = tbl.Close()
}

func TestTable_Append_QuotesFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.csv")

	tbl, _ := OpenTable(path)
	if err := tbl.Append([]string{"1 cup flour, sifted", `say "hi"`}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	_ = tbl.Close()

	rows := readCSV(t, path)
	if rows[0][0] != "1 cup flour, sifted" || rows[0][1] != `say "hi"` {
		t.Errorf("fields not round-tripped: %v", rows[0])
	}
}

func TestCreateTable_TruncatesAndWritesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.csv")
	if err := os.WriteFile(path, []byte("old,row\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tbl, err := CreateTable(path, []string{"id", "name"})
	if err != nil {
		t.Fatalf("CreateTable() error = %v", err)
	}
	_ = tbl.Close()

	rows := readCSV(t, path)
	if !reflect.DeepEqual(rows, [][]string{{"id", "name"}}) {
		t.Errorf("rows = %v", rows)
	}
}

// --- Sink Tests ---

func TestSink_WriteRecipe_LinksTables(t *testing.T) {
	dest := config.NewDestination(t.TempDir())

	sink, err := NewSink(dest)
	if err != nil {
		t.Fatalf("NewSink() error = %v", err)
	}
	if err := sink.WriteRecipe(sampleRecipe("030007", 3)); err != nil {
		t.Fatalf("WriteRecipe() error = %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	info := readCSV(t, dest.CookingInfo)
	if !reflect.DeepEqual(info, [][]string{{"030007", "Pad Thai", "Noodles, tamarind, peanuts", "2", "3"}}) {
		t.Errorf("cooking info rows = %v", info)
	}

	ingredients := readCSV(t, dest.Ingredients)
	wantIng := [][]string{{"rice noodles", "030007"}, {"2 eggs", "030007"}}
	if !reflect.DeepEqual(ingredients, wantIng) {
		t.Errorf("ingredient rows = %v, want %v", ingredients, wantIng)
	}

	nutrition := readCSV(t, dest.Nutrition)
	if !reflect.DeepEqual(nutrition, [][]string{{"fat", "10g", "030007"}}) {
		t.Errorf("nutrition rows = %v", nutrition)
	}
}

func TestSink_WriteRecipe_DurableBeforeClose(t *testing.T) {
	dest := config.NewDestination(t.TempDir())

	sink, err := NewSink(dest)
	if err != nil {
		t.Fatalf("NewSink() error = %v", err)
	}
	defer func() { _ = sink.Close() }()

	if err := sink.WriteRecipe(sampleRecipe("010001", 1)); err != nil {
		t.Fatalf("WriteRecipe() error = %v", err)
	}

	if got := len(readCSV(t, dest.CookingInfo)); got != 1 {
		t.Errorf("expected cooking info row on disk before Close, got %d rows", got)
	}
	if got := len(readCSV(t, dest.Nutrition)); got != 1 {
		t.Errorf("expected nutrition row on disk before Close, got %d rows", got)
	}
}

func TestSink_AppendsAfterHeader(t *testing.T) {
	dest := config.NewDestination(t.TempDir())
	if err := InitTables(dest); err != nil {
		t.Fatalf("InitTables() error = %v", err)
	}

	sink, _ := NewSink(dest)
	_ = sink.WriteRecipe(sampleRecipe("010001", 1))
	_ = sink.Close()

	rows := readCSV(t, dest.CookingInfo)
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %v", rows)
	}
	if !reflect.DeepEqual(rows[0], recipe.CookingInfoHeader) {
		t.Errorf("header = %v", rows[0])
	}
}

func TestSink_NotIdempotent(t *testing.T) {
	// Two runs over the same recipe append duplicate rows. There is no
	// deduplication.
	dest := config.NewDestination(t.TempDir())

	for run := 0; run < 2; run++ {
		sink, err := NewSink(dest)
		if err != nil {
			t.Fatalf("NewSink() error = %v", err)
		}
		if err := sink.WriteRecipe(sampleRecipe("010001", 1)); err != nil {
			t.Fatalf("WriteRecipe() error = %v", err)
		}
		_ = sink.Close()
	}

	info := readCSV(t, dest.CookingInfo)
	if len(info) != 2 || !reflect.DeepEqual(info[0], info[1]) {
		t.Errorf("expected two identical rows, got %v", info)
	}
	if got := len(readCSV(t, dest.Ingredients)); got != 4 {
		t.Errorf("expected 4 ingredient rows, got %d", got)
	}
}

func TestSink_Stats(t *testing.T) {
	sink, err := NewSink(config.NewDestination(t.TempDir()))
	if err != nil {
		t.Fatalf("NewSink() error = %v", err)
	}
	defer func() { _ = sink.Close() }()

	_ = sink.WriteRecipe(sampleRecipe("010001", 1))
	_ = sink.WriteRecipe(sampleRecipe("010002", 1))

	want := SinkStats{Recipes: 2, Ingredients: 4, Nutrition: 2}
	if got := sink.Stats(); got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
}

func TestWriteCategories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "category_master.csv")
	cats := []recipe.Category{
		recipe.NewCategory(1, "American"),
		recipe.NewCategory(2, "Tex & Mex"),
	}

	if err := WriteCategories(path, cats); err != nil {
		t.Fatalf("WriteCategories() error = %v", err)
	}
	// A second call replaces rather than appends.
	if err := WriteCategories(path, cats); err != nil {
		t.Fatalf("WriteCategories() error = %v", err)
	}

	rows := readCSV(t, path)
	want := [][]string{{"id", "name"}, {"1", "American"}, {"2", "Tex & Mex"}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %v, want %v", rows, want)
	}
}

func TestInitTables_CreatesImageDir(t *testing.T) {
	dest := config.NewDestination(t.TempDir())
	if err := InitTables(dest); err != nil {
		t.Fatalf("InitTables() error = %v", err)
	}

	info, err := os.Stat(dest.ImageDir)
	if err != nil || !info.IsDir() {
		t.Errorf("expected image directory, err = %v", err)
	}
	if rows := readCSV(t, dest.Nutrition); !reflect.DeepEqual(rows, [][]string{recipe.NutritionHeader}) {
		t.Errorf("nutrition header = %v", rows)
	}
}

// --- JSONLWriter Tests ---

func TestJSONLWriter_Write_SeparateLines(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONLWriter(buf)

	_ = w.Write(ArchivedRecord{CookingID: "010001", CategoryID: 1, Record: recipe.Record{Name: "a"}})
	_ = w.Write(ArchivedRecord{CookingID: "010002", CategoryID: 1, Record: recipe.Record{Name: "b"}})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}

	var got ArchivedRecord
	if err := json.Unmarshal([]byte(lines[1]), &got); err != nil {
		t.Fatalf("failed to unmarshal line: %v", err)
	}
	if got.CookingID != "010002" || got.Record.Name != "b" {
		t.Errorf("unexpected record: %+v", got)
	}
}

func TestOpenArchive_Appends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.jsonl")

	for i := 0; i < 2; i++ {
		w, err := OpenArchive(path)
		if err != nil {
			t.Fatalf("OpenArchive() error = %v", err)
		}
		_ = w.Write(map[string]int{"n": i})
		if err := w.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
	}

	data, _ := os.ReadFile(path)
	if got := strings.Count(string(data), "\n"); got != 2 {
		t.Errorf("expected 2 lines after two opens, got %d", got)
	}
}

// --- Manifest Tests ---

func TestManifest_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	m := Manifest{
		StartedAt:  start,
		FinishedAt: start.Add(time.Minute),
		BaseURL:    "https://example.com/recipes",
		MaxResults: 500,
		Totals:     SinkStats{Recipes: 3, Ingredients: 12, Nutrition: 9},
		Categories: []CategoryManifest{
			{ID: 1, Name: "American", Slug: "american", Recipes: 3},
			{ID: 2, Name: "Thai", Slug: "thai", Skipped: "listing unavailable"},
		},
	}

	if err := WriteManifest(path, m); err != nil {
		t.Fatalf("WriteManifest() error = %v", err)
	}

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "slug: american") {
		t.Errorf("expected YAML keys, got:\n%s", data)
	}

	got, err := ReadManifest(path)
	if err != nil {
		t.Fatalf("ReadManifest() error = %v", err)
	}
	if !got.StartedAt.Equal(m.StartedAt) || !got.FinishedAt.Equal(m.FinishedAt) {
		t.Errorf("timestamps = %v..%v, want %v..%v", got.StartedAt, got.FinishedAt, m.StartedAt, m.FinishedAt)
	}
	got.StartedAt, got.FinishedAt = m.StartedAt, m.FinishedAt
	if !reflect.DeepEqual(got, m) {
		t.Errorf("ReadManifest() = %+v, want %+v", got, m)
	}
}
