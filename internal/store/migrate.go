package store

import (
	"context"
	"encoding/json/v2"

	"github.com/dgraph-io/badger/v4"
)

// MigrateContactCategories upgrades contact documents written before
// categories became a set. Old documents carry a single "category" string;
// the migration moves that value into the "categories" array and drops the
// scalar field. Already-migrated documents are left untouched, so running
// at every startup is safe.
func (s *Store) MigrateContactCategories(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	migrated := 0
	err := s.db.Update(func(txn *badger.Txn) error {
		// Collect rewrites first; Badger forbids writes while an iterator
		// on the same transaction is open.
		pending := make(map[string][]byte)

		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(contactPrefix)

		it := txn.NewIterator(opts)
		for it.Seek([]byte(contactPrefix)); it.ValidForPrefix([]byte(contactPrefix)); it.Next() {
			item := it.Item()
			key := string(item.Key())

			var doc map[string]any
			err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &doc)
			})
			if err != nil {
				it.Close()
				return err
			}

			old, ok := doc["category"].(string)
			if !ok {
				continue
			}

			var categories []any
			if existing, ok := doc["categories"].([]any); ok {
				categories = existing
			}
			found := false
			for _, c := range categories {
				if c == old {
					found = true
					break
				}
			}
			if !found && old != "" {
				categories = append(categories, old)
			}

			doc["categories"] = categories
			delete(doc, "category")

			data, err := json.Marshal(doc)
			if err != nil {
				it.Close()
				return err
			}
			pending[key] = data
		}
		it.Close()

		for key, data := range pending {
			if err := txn.Set([]byte(key), data); err != nil {
				return err
			}
			migrated++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if migrated > 0 && s.logger != nil {
		s.logger.Info("migrated contact categories to sets", "count", migrated)
	}
	return migrated, nil
}
