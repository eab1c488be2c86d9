package config

import (
	specialRepo "kms.GO/model/repository/special"
)

// NewStore opens the flat-file specials repository. The backing file is
// created lazily on first read, so a fresh deployment starts with an empty
// catalog instead of an error.
func NewStore() *specialRepo.SpecialRepository {
	return specialRepo.NewSpecialRepository(GetEnv("DATA_FILE", "data/specials.json"))
}
