package pipeline

import (
	"errors"
	"fmt"
	"os"

	"reqnorm/internal"
	"reqnorm/internal/cache"
	"reqnorm/internal/resolve"
	"reqnorm/internal/schema"
	"reqnorm/internal/util"
)

// Reconcile maps a source table with arbitrary headers onto the
// canonical 16-column schema. Headers known to the mapping table are
// claimed automatically; the rest are resolved from the choice cache
// and, failing that, by the resolver. Answered decisions are persisted
// immediately, so a cancelled column leaves no cache entry; resolver
// fallbacks are never persisted at all.
//
// resolve.ErrCancelled aborts the whole file and is returned as-is.
func Reconcile(table internal.Table, path string, fc *cache.FileCache, r resolve.Resolver) ([]internal.Record, error) {
	headers := make([]string, len(table.Headers))
	for i, h := range table.Headers {
		headers[i] = schema.StandardizeHeader(h)
	}

	// assigned: canonical column -> source header that claimed it.
	// columnData: canonical column -> index of the source column to copy.
	assigned := map[string]string{}
	columnData := map[string]int{}
	unmapped := []int{}

	for i, src := range headers {
		target, ok := schema.ColumnMapping[src]
		if !ok {
			unmapped = append(unmapped, i)
			continue
		}
		fmt.Printf("mapping column %q to %q\n", src, target)
		columnData[target] = i
		assigned[target] = src
	}

	if len(unmapped) > 0 {
		fmt.Printf("\nfound %d unmapped column(s)\n", len(unmapped))
		var cached map[string]string
		if fc != nil {
			cached = fc.Choices(path).ColumnMappings
		}

		for _, i := range unmapped {
			src := headers[i]

			if target, ok := cached[src]; ok {
				if target == "skip" || target == "" {
					fmt.Printf("using cached choice for %q: skip\n", src)
					continue
				}
				if schema.ColumnIndex(target) >= 0 {
					// Cached assignments are trusted without an
					// overwrite confirmation.
					fmt.Printf("using cached mapping %q -> %q\n", src, target)
					columnData[target] = i
					assigned[target] = src
					continue
				}
			}

			decision, err := resolveColumn(src, assigned, r)
			if err != nil {
				if errors.Is(err, resolve.ErrCancelled) {
					return nil, err
				}
				fmt.Fprintf(os.Stderr, "warning: skipping column %q: %v\n", src, err)
				continue
			}
			if decision.Skip {
				fmt.Printf("skipping column %q\n", src)
				if fc != nil && decision.Remember {
					fc.SaveColumnMapping(path, src, "skip")
				}
				continue
			}

			fmt.Printf("mapping column %q -> %q\n", src, decision.Target)
			columnData[decision.Target] = i
			assigned[decision.Target] = src
			if fc != nil && decision.Remember {
				fc.SaveColumnMapping(path, src, decision.Target)
			}
		}
	}

	records := make([]internal.Record, len(table.Rows))
	for rowIdx := range table.Rows {
		rec := internal.Record{}
		for target, colIdx := range columnData {
			rec.Set(target, util.CleanCell(table.Cell(rowIdx, colIdx)))
		}
		rec.Compliance = schema.NormalizeCompliance(rec.Compliance)
		records[rowIdx] = rec
	}
	return records, nil
}

// resolveColumn loops until the resolver produces a decision the
// assignment state accepts: skip, an unclaimed column, or a claimed
// column with an explicit overwrite confirmation. Declining the
// confirmation re-prompts.
func resolveColumn(source string, assigned map[string]string, r resolve.Resolver) (resolve.Decision, error) {
	for {
		decision, err := r.ResolveColumn(source, schema.Columns, assigned)
		if err != nil {
			return resolve.Decision{}, err
		}
		if decision.Skip {
			return decision, nil
		}
		if schema.ColumnIndex(decision.Target) < 0 {
			return resolve.Decision{}, fmt.Errorf("unknown target column %q", decision.Target)
		}

		claimedBy, taken := assigned[decision.Target]
		if !taken || claimedBy == source {
			return decision, nil
		}
		ok, err := r.ConfirmOverwrite(decision.Target, claimedBy)
		if err != nil {
			return resolve.Decision{}, err
		}
		if ok {
			return decision, nil
		}
	}
}
