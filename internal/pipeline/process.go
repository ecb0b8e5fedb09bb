package pipeline

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"reqnorm/internal"
	"reqnorm/internal/cache"
	"reqnorm/internal/config"
	"reqnorm/internal/resolve"
	"reqnorm/internal/schema"
	"reqnorm/internal/storage"
)

// ErrUnsupportedType marks a file neither extractor understands. Batch
// processing reports it and moves on.
var ErrUnsupportedType = errors.New("unsupported file type")

type ProcessingService struct {
	db       *storage.DB
	cfg      config.Config
	cache    *cache.FileCache
	resolver resolve.Resolver
}

func NewProcessingService(db *storage.DB, cfg config.Config, fc *cache.FileCache, r resolve.Resolver) *ProcessingService {
	return &ProcessingService{db: db, cfg: cfg, cache: fc, resolver: r}
}

type ProcessResult struct {
	InputPath  string
	SourceType internal.SourceType
	Records    int
	OutputPath string
}

// DetectSourceType classifies a file by extension.
func DetectSourceType(path string) (internal.SourceType, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls", ".xlsm":
		return internal.SourceExcel, nil
	case ".csv":
		return internal.SourceCSV, nil
	case ".pdf":
		return internal.SourcePDF, nil
	case ".html", ".htm":
		return internal.SourceHTML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, filepath.Ext(path))
	}
}

// ProcessFile normalizes one source file and exports the canonical
// table. An empty outputPath derives one under the configured output
// directory. resolve.ErrCancelled aborts this file only.
func (s *ProcessingService) ProcessFile(inputPath, outputPath string) (ProcessResult, error) {
	start := time.Now()

	sourceType, err := DetectSourceType(inputPath)
	if err != nil {
		return ProcessResult{}, err
	}

	fmt.Printf("\nprocessing %s (%s)\n", filepath.Base(inputPath), sourceType)

	records, err := s.extract(sourceType, inputPath)
	if err != nil {
		s.recordRun(inputPath, sourceType, 0, "", start, "failed")
		return ProcessResult{}, err
	}
	fmt.Printf("extracted %d requirement(s)\n", len(records))

	if outputPath == "" {
		outputPath = s.defaultOutputPath(inputPath)
	}
	if err := Export(records, outputPath); err != nil {
		s.recordRun(inputPath, sourceType, len(records), "", start, "failed")
		return ProcessResult{}, err
	}

	s.recordRun(inputPath, sourceType, len(records), outputPath, start, "processed")
	return ProcessResult{
		InputPath:  inputPath,
		SourceType: sourceType,
		Records:    len(records),
		OutputPath: outputPath,
	}, nil
}

func (s *ProcessingService) extract(sourceType internal.SourceType, inputPath string) ([]internal.Record, error) {
	switch sourceType {
	case internal.SourceExcel:
		table, err := ExtractXLSX(inputPath, s.cache, s.resolver)
		if err != nil {
			return nil, err
		}
		return Reconcile(table, inputPath, s.cache, s.resolver)
	case internal.SourceCSV:
		table, err := ExtractCSV(inputPath)
		if err != nil {
			return nil, err
		}
		return Reconcile(table, inputPath, s.cache, s.resolver)
	case internal.SourceHTML:
		table, err := ExtractHTML(inputPath)
		if err != nil {
			return nil, err
		}
		return Reconcile(table, inputPath, s.cache, s.resolver)
	case internal.SourcePDF:
		lines, err := ExtractPDFLines(inputPath, s.cfg.PDFHeaderSkip)
		if err != nil {
			return nil, err
		}
		blocks := GroupBlocks(lines)
		records := make([]internal.Record, 0, len(blocks))
		for _, block := range blocks {
			rec := ParseBlock(block)
			rec.Compliance = schema.NormalizeCompliance(rec.Compliance)
			records = append(records, rec)
		}
		return records, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, sourceType)
	}
}

type BatchResult struct {
	Total     int
	Processed int
	Skipped   int
	Failed    int
}

var batchExtensions = map[string][]string{
	"all":   {".pdf", ".xlsx", ".xls", ".xlsm", ".csv", ".html", ".htm"},
	"pdf":   {".pdf"},
	"excel": {".xlsx", ".xls", ".xlsm"},
	"csv":   {".csv"},
	"html":  {".html", ".htm"},
}

// ProcessBatch runs every matching file in a directory to completion,
// one at a time. Per-file failures and cancellations are reported and
// the batch continues.
func (s *ProcessingService) ProcessBatch(dir, typeFilter string) (BatchResult, error) {
	allowed, ok := batchExtensions[typeFilter]
	if !ok {
		allowed = batchExtensions["all"]
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return BatchResult{}, err
	}

	files := []string{}
	for _, entry := range entries {
		if entry.IsDir() || skipDirEntry(entry.Name()) {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		for _, a := range allowed {
			if ext == a {
				files = append(files, filepath.Join(dir, entry.Name()))
				break
			}
		}
	}

	result := BatchResult{Total: len(files)}
	if len(files) == 0 {
		fmt.Printf("no %s files found in %s\n", typeFilter, dir)
		return result, nil
	}
	fmt.Printf("found %d file(s) to process\n", len(files))

	for _, file := range files {
		if _, err := s.ProcessFile(file, ""); err != nil {
			if errors.Is(err, resolve.ErrCancelled) {
				fmt.Fprintf(os.Stderr, "cancelled: %s\n", filepath.Base(file))
				result.Skipped++
				continue
			}
			fmt.Fprintf(os.Stderr, "error processing %s: %v\n", filepath.Base(file), err)
			result.Failed++
			continue
		}
		result.Processed++
	}

	fmt.Printf("batch complete: %d/%d files processed\n", result.Processed, result.Total)
	return result, nil
}

// skipDirEntry filters placeholders, markdown, temp and hidden files,
// matching the batch contract.
func skipDirEntry(name string) bool {
	return name == ".placeholder" ||
		strings.HasSuffix(name, ".md") ||
		strings.HasPrefix(name, "~") ||
		strings.HasPrefix(name, ".")
}

func (s *ProcessingService) defaultOutputPath(inputPath string) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(s.cfg.OutputDir, stem+s.cfg.OutputSuffix+".csv")
}

func (s *ProcessingService) recordRun(inputPath string, sourceType internal.SourceType, records int, outputPath string, start time.Time, status string) {
	if s.db == nil {
		return
	}
	exported := 0
	if status == "processed" {
		exported = records
	}
	err := s.db.InsertRun(internal.RunRow{
		TraceID:    traceID(),
		InputPath:  inputPath,
		SourceType: string(sourceType),
		Extracted:  records,
		Exported:   exported,
		OutputPath: outputPath,
		DurationMs: float64(time.Since(start).Milliseconds()),
		Status:     status,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not record run: %v\n", err)
	}
}

func traceID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("run-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
