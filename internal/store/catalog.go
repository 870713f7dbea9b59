package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vk/testgridgo/internal/model"
)

// ReplaceCatalog drops the current catalog and writes the given one inside a
// single transaction. Run-fact tables are untouched: the catalog is a
// derived, disposable artifact, the run history is not.
func (s *Store) ReplaceCatalog(ctx context.Context, cat *model.Catalog) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, table := range []string{"target_features", "target_algorithms", "target_sectors", "target_memories", "features", "targets"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}

		for _, f := range cat.Features {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO features(name, define, friendly_name, description, hidden) VALUES(?, ?, ?, ?, ?)",
				f.Name, f.Define, f.FriendlyName, f.Description, boolInt(f.Hidden))
			if err != nil {
				return fmt.Errorf("insert feature %s: %w", f.Name, err)
			}
		}

		for i := range cat.Targets {
			if err := insertTarget(ctx, tx, &cat.Targets[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func insertTarget(ctx context.Context, tx *sql.Tx, t *model.Target) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO targets(name, parent, vendor, family, sub_family, public, core_arch, core_fpu, core_mpu, core_count)
		 VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.Name, t.Parent, t.Vendor, t.Family, t.SubFamily, boolInt(t.Public),
		t.Core.Architecture, boolInt(t.Core.HasFPU), boolInt(t.Core.HasMPU), t.Core.CoreCount)
	if err != nil {
		return fmt.Errorf("insert target %s: %w", t.Name, err)
	}

	for _, mem := range t.Memories {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO target_memories(target, name, kind, start, size, access, startup, is_default)
			 VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
			t.Name, mem.Name, string(mem.Kind), int64(mem.Start), int64(mem.Size), mem.Access,
			boolInt(mem.Startup), boolInt(mem.Default))
		if err != nil {
			return fmt.Errorf("insert memory %s/%s: %w", t.Name, mem.Name, err)
		}
	}

	for i, sec := range t.Sectors {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO target_sectors(target, seq, sector_offset, sector_size) VALUES(?, ?, ?, ?)",
			t.Name, i, int64(sec.Offset), int64(sec.Size))
		if err != nil {
			return fmt.Errorf("insert sector %s/%d: %w", t.Name, i, err)
		}
	}

	for i, alg := range t.Algorithms {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO target_algorithms(target, seq, file, ram_start, ram_size, start, size, is_default)
			 VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
			t.Name, i, alg.File, int64(alg.RAMStart), int64(alg.RAMSize), int64(alg.Start), int64(alg.Size), boolInt(alg.Default))
		if err != nil {
			return fmt.Errorf("insert algorithm %s/%d: %w", t.Name, i, err)
		}
	}

	for _, feature := range t.Features {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO target_features(target, feature) VALUES(?, ?)", t.Name, feature)
		if err != nil {
			return fmt.Errorf("insert target feature %s/%s: %w", t.Name, feature, err)
		}
	}
	return nil
}

// HasTarget reports whether the current catalog contains the named target.
func (s *Store) HasTarget(ctx context.Context, name string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM targets WHERE name = ?", name).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("query target %s: %w", name, err)
	}
	return n > 0, nil
}

// Catalog reads the full catalog back, targets and features ordered by name.
func (s *Store) Catalog(ctx context.Context) (*model.Catalog, error) {
	cat := &model.Catalog{}

	rows, err := s.db.QueryContext(ctx,
		`SELECT name, parent, vendor, family, sub_family, public, core_arch, core_fpu, core_mpu, core_count
		 FROM targets ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("query targets: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var t model.Target
		var public, fpu, mpu int
		if err := rows.Scan(&t.Name, &t.Parent, &t.Vendor, &t.Family, &t.SubFamily, &public,
			&t.Core.Architecture, &fpu, &mpu, &t.Core.CoreCount); err != nil {
			return nil, fmt.Errorf("scan target: %w", err)
		}
		t.Public = public != 0
		t.Core.HasFPU = fpu != 0
		t.Core.HasMPU = mpu != 0
		cat.Targets = append(cat.Targets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate targets: %w", err)
	}

	for i := range cat.Targets {
		if err := s.loadTargetDetails(ctx, &cat.Targets[i]); err != nil {
			return nil, err
		}
	}

	cat.Features, err = s.Features(ctx)
	if err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *Store) loadTargetDetails(ctx context.Context, t *model.Target) error {
	memRows, err := s.db.QueryContext(ctx,
		`SELECT name, kind, start, size, access, startup, is_default
		 FROM target_memories WHERE target = ? ORDER BY name ASC`, t.Name)
	if err != nil {
		return fmt.Errorf("query memories for %s: %w", t.Name, err)
	}
	defer memRows.Close()
	for memRows.Next() {
		var mem model.MemoryRegion
		var kind string
		var start, size int64
		var startup, def int
		if err := memRows.Scan(&mem.Name, &kind, &start, &size, &mem.Access, &startup, &def); err != nil {
			return fmt.Errorf("scan memory for %s: %w", t.Name, err)
		}
		mem.Kind = model.MemoryKind(kind)
		mem.Start = uint64(start)
		mem.Size = uint64(size)
		mem.Startup = startup != 0
		mem.Default = def != 0
		t.Memories = append(t.Memories, mem)
	}
	if err := memRows.Err(); err != nil {
		return fmt.Errorf("iterate memories for %s: %w", t.Name, err)
	}

	secRows, err := s.db.QueryContext(ctx,
		"SELECT sector_offset, sector_size FROM target_sectors WHERE target = ? ORDER BY seq ASC", t.Name)
	if err != nil {
		return fmt.Errorf("query sectors for %s: %w", t.Name, err)
	}
	defer secRows.Close()
	for secRows.Next() {
		var off, size int64
		if err := secRows.Scan(&off, &size); err != nil {
			return fmt.Errorf("scan sector for %s: %w", t.Name, err)
		}
		t.Sectors = append(t.Sectors, model.SectorRange{Offset: uint64(off), Size: uint64(size)})
	}
	if err := secRows.Err(); err != nil {
		return fmt.Errorf("iterate sectors for %s: %w", t.Name, err)
	}

	algRows, err := s.db.QueryContext(ctx,
		`SELECT file, ram_start, ram_size, start, size, is_default
		 FROM target_algorithms WHERE target = ? ORDER BY seq ASC`, t.Name)
	if err != nil {
		return fmt.Errorf("query algorithms for %s: %w", t.Name, err)
	}
	defer algRows.Close()
	for algRows.Next() {
		var alg model.FlashAlgorithm
		var ramStart, ramSize, start, size int64
		var def int
		if err := algRows.Scan(&alg.File, &ramStart, &ramSize, &start, &size, &def); err != nil {
			return fmt.Errorf("scan algorithm for %s: %w", t.Name, err)
		}
		alg.RAMStart = uint64(ramStart)
		alg.RAMSize = uint64(ramSize)
		alg.Start = uint64(start)
		alg.Size = uint64(size)
		alg.Default = def != 0
		t.Algorithms = append(t.Algorithms, alg)
	}
	if err := algRows.Err(); err != nil {
		return fmt.Errorf("iterate algorithms for %s: %w", t.Name, err)
	}

	featRows, err := s.db.QueryContext(ctx,
		"SELECT feature FROM target_features WHERE target = ? ORDER BY feature ASC", t.Name)
	if err != nil {
		return fmt.Errorf("query features for %s: %w", t.Name, err)
	}
	defer featRows.Close()
	for featRows.Next() {
		var name string
		if err := featRows.Scan(&name); err != nil {
			return fmt.Errorf("scan feature for %s: %w", t.Name, err)
		}
		t.Features = append(t.Features, name)
	}
	return featRows.Err()
}

// Features returns the feature mapping stored with the catalog, ordered by name.
func (s *Store) Features(ctx context.Context) ([]model.Feature, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name, define, friendly_name, description, hidden FROM features ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("query features: %w", err)
	}
	defer rows.Close()

	var features []model.Feature
	for rows.Next() {
		var f model.Feature
		var hidden int
		if err := rows.Scan(&f.Name, &f.Define, &f.FriendlyName, &f.Description, &hidden); err != nil {
			return nil, fmt.Errorf("scan feature: %w", err)
		}
		f.Hidden = hidden != 0
		features = append(features, f)
	}
	return features, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
