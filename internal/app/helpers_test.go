package app

import (
	"strconv"

	"github.com/angelmondragon/friendsofall-backend/internal/catalog"
)

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func catalogAll() catalog.ListFilter {
	return catalog.ListFilter{}
}
