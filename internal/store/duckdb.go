package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/inodb/vibe-acmg/internal/variant"
)

// DuckDB provides annotation record lookups backed by DuckDB. Reference
// data is bulk-loaded from TSV files and either queried directly or
// preloaded into a Memory store for lock-free lookups during matching.
// Both lookup statements are prepared at open time so lookups stay safe
// for concurrent workers.
type DuckDB struct {
	db      *sql.DB
	rsidPS  *sql.Stmt
	coordPS *sql.Stmt
}

// OpenDuckDB opens or creates a DuckDB annotation database at the given
// path. Use an empty string for an in-memory database.
func OpenDuckDB(dbPath string) (*DuckDB, error) {
	if dbPath != "" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &DuckDB{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	if err := s.prepareLookups(); err != nil {
		db.Close()
		return nil, fmt.Errorf("prepare lookups: %w", err)
	}

	return s, nil
}

// prepareLookups readies the two lookup statements. ORDER BY rowid keeps
// the returned record the first-loaded one when a key is ambiguous.
func (s *DuckDB) prepareLookups() error {
	var err error
	s.rsidPS, err = s.db.Prepare(`SELECT rsid, chrom, pos, ref, alt,
		clinical_significance, review_status, consequence,
		allele_frequency, homozygote_count, gene_symbol, oe_lof_upper,
		COUNT(*) OVER () AS n
		FROM annotations WHERE rsid = ? ORDER BY rowid LIMIT 1`)
	if err != nil {
		return err
	}
	s.coordPS, err = s.db.Prepare(`SELECT rsid, chrom, pos, ref, alt,
		clinical_significance, review_status, consequence,
		allele_frequency, homozygote_count, gene_symbol, oe_lof_upper,
		COUNT(*) OVER () AS n
		FROM annotations WHERE chrom = ? AND pos = ? ORDER BY rowid LIMIT 1`)
	return err
}

func (s *DuckDB) ensureSchema() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS annotations (
		rsid VARCHAR,
		chrom VARCHAR,
		pos BIGINT,
		ref VARCHAR,
		alt VARCHAR,
		clinical_significance VARCHAR,
		review_status VARCHAR,
		consequence VARCHAR,
		allele_frequency DOUBLE,
		homozygote_count BIGINT,
		gene_symbol VARCHAR,
		oe_lof_upper DOUBLE
	)`); err != nil {
		return err
	}
	// Indexes for the two lookup strategies
	s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_ann_rsid ON annotations (rsid)`)
	s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_ann_coord ON annotations (chrom, pos)`)
	return nil
}

// Loaded returns true if the annotations table has data.
func (s *DuckDB) Loaded() bool {
	var count int64
	err := s.db.QueryRow("SELECT COUNT(*) FROM annotations").Scan(&count)
	return err == nil && count > 0
}

// Count returns the number of rows in the annotations table.
func (s *DuckDB) Count() (int64, error) {
	var count int64
	err := s.db.QueryRow("SELECT COUNT(*) FROM annotations").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count annotation rows: %w", err)
	}
	return count, nil
}

// Load bulk-loads annotation data from a (optionally gzipped) TSV file
// using DuckDB's read_csv. The file has a header line:
//
//	rsid  chrom  pos  ref  alt  clinical_significance  review_status  consequence  allele_frequency  homozygote_count  gene_symbol  oe_lof_upper
//
// Empty numeric fields are loaded as NULL. Chromosome names are normalized
// at ingest with the same rules the matcher applies to user variants
// (case-insensitive "chr" prefix strip, upper-case, M to MT), so lookups
// by normalized key always find them.
func (s *DuckDB) Load(tsvPath string) error {
	// Clear any existing data first (idempotent reload)
	s.db.Exec(`DELETE FROM annotations`)

	query := fmt.Sprintf(`INSERT INTO annotations
		SELECT lower(rsid),
			CASE WHEN norm_chrom = 'M' THEN 'MT' ELSE norm_chrom END,
			pos, ref, alt,
			clinical_significance, review_status, consequence,
			CAST(allele_frequency AS DOUBLE),
			CAST(homozygote_count AS BIGINT),
			gene_symbol,
			CAST(oe_lof_upper AS DOUBLE)
		FROM (SELECT *,
			upper(CASE WHEN lower(chrom) LIKE 'chr%%' THEN substr(chrom, 4) ELSE chrom END) AS norm_chrom
		FROM read_csv('%s', delim='\t', header=true, nullstr='',
			columns={
				'rsid': 'VARCHAR',
				'chrom': 'VARCHAR',
				'pos': 'BIGINT',
				'ref': 'VARCHAR',
				'alt': 'VARCHAR',
				'clinical_significance': 'VARCHAR',
				'review_status': 'VARCHAR',
				'consequence': 'VARCHAR',
				'allele_frequency': 'VARCHAR',
				'homozygote_count': 'VARCHAR',
				'gene_symbol': 'VARCHAR',
				'oe_lof_upper': 'VARCHAR'
			}))`, tsvPath)

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("loading annotation data: %w", err)
	}
	return nil
}

// Insert adds a single record, mainly for tests and incremental loads.
// The chromosome is normalized the same way Load normalizes it.
func (s *DuckDB) Insert(rec *Record) error {
	var freq, oe interface{}
	var hom interface{}
	if rec.AlleleFrequency != nil {
		freq = *rec.AlleleFrequency
	}
	if rec.HomozygoteCount != nil {
		hom = *rec.HomozygoteCount
	}
	if rec.OELoFUpper != nil {
		oe = *rec.OELoFUpper
	}
	chrom := variant.Identity{Chrom: rec.Chrom}.NormalizeChrom()
	_, err := s.db.Exec(
		`INSERT INTO annotations VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		strings.ToLower(rec.RSID), chrom, rec.Pos, rec.Ref, rec.Alt,
		rec.ClinicalSignificance, rec.ReviewStatus, rec.Consequence,
		freq, hom, rec.GeneSymbol, oe,
	)
	if err != nil {
		return fmt.Errorf("insert annotation: %w", err)
	}
	return nil
}

// PreloadToMemory loads all annotation rows into a Memory store for O(1)
// lookups without database overhead during the matching phase. Rows are
// read in rowid order so first-record-wins stays stable across runs.
func (s *DuckDB) PreloadToMemory() (*Memory, error) {
	rows, err := s.db.Query(`SELECT rsid, chrom, pos, ref, alt,
		clinical_significance, review_status, consequence,
		allele_frequency, homozygote_count, gene_symbol, oe_lof_upper
		FROM annotations ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query annotations for preload: %w", err)
	}
	defer rows.Close()

	mem := NewMemory()
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan preload row: %w", err)
		}
		mem.Add(rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("preload rows: %w", err)
	}
	return mem, nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanRecord.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(sc scanner) (*Record, error) {
	var rec Record
	var rsid, ref, alt, sig, review, csq, gene sql.NullString
	var chrom sql.NullString
	var pos sql.NullInt64
	var freq, oe sql.NullFloat64
	var hom sql.NullInt64

	if err := sc.Scan(&rsid, &chrom, &pos, &ref, &alt, &sig, &review, &csq, &freq, &hom, &gene, &oe); err != nil {
		return nil, err
	}

	rec.RSID = rsid.String
	rec.Chrom = chrom.String
	rec.Pos = pos.Int64
	rec.Ref = ref.String
	rec.Alt = alt.String
	rec.ClinicalSignificance = sig.String
	rec.ReviewStatus = review.String
	rec.Consequence = csq.String
	rec.GeneSymbol = gene.String
	if freq.Valid {
		f := freq.Float64
		rec.AlleleFrequency = &f
	}
	if hom.Valid {
		h := hom.Int64
		rec.HomozygoteCount = &h
	}
	if oe.Valid {
		o := oe.Float64
		rec.OELoFUpper = &o
	}
	return &rec, nil
}

// ByRSID looks up a record by rsID directly in DuckDB. The ambiguity flag
// is set when more than one row shares the rsID.
func (s *DuckDB) ByRSID(rsid string) (Hit, bool) {
	return s.lookupOne(s.rsidPS, strings.ToLower(strings.TrimSpace(rsid)))
}

// ByCoordinate looks up a record by (chrom, pos), allele-agnostic.
func (s *DuckDB) ByCoordinate(chrom string, pos int64) (Hit, bool) {
	return s.lookupOne(s.coordPS, chrom, pos)
}

func (s *DuckDB) lookupOne(ps *sql.Stmt, args ...interface{}) (Hit, bool) {
	var rec Record
	var rsid, chrom, ref, alt, sig, review, csq, gene sql.NullString
	var pos sql.NullInt64
	var freq, oe sql.NullFloat64
	var hom, n sql.NullInt64

	err := ps.QueryRow(args...).Scan(&rsid, &chrom, &pos, &ref, &alt,
		&sig, &review, &csq, &freq, &hom, &gene, &oe, &n)
	if err != nil {
		return Hit{}, false
	}

	rec.RSID = rsid.String
	rec.Chrom = chrom.String
	rec.Pos = pos.Int64
	rec.Ref = ref.String
	rec.Alt = alt.String
	rec.ClinicalSignificance = sig.String
	rec.ReviewStatus = review.String
	rec.Consequence = csq.String
	rec.GeneSymbol = gene.String
	if freq.Valid {
		f := freq.Float64
		rec.AlleleFrequency = &f
	}
	if hom.Valid {
		h := hom.Int64
		rec.HomozygoteCount = &h
	}
	if oe.Valid {
		o := oe.Float64
		rec.OELoFUpper = &o
	}
	return Hit{Record: &rec, Ambiguous: n.Int64 > 1}, true
}

// Close closes the database connection.
func (s *DuckDB) Close() error {
	if s.rsidPS != nil {
		s.rsidPS.Close()
	}
	if s.coordPS != nil {
		s.coordPS.Close()
	}
	return s.db.Close()
}
