// nolint
//
//lint:file-ignore U1000 ignore unused code, it's generated
package db

import (
	"time"
)

var Columns = struct {
	GooseDbVersion struct {
		ID, VersionID, IsApplied, Tstamp string
	}
	Notice struct {
		ID, Title, Content, Author, CreatedAt, ModifiedAt, IsExposed string
	}
}{
	GooseDbVersion: struct {
		ID, VersionID, IsApplied, Tstamp string
	}{
		ID:        "id",
		VersionID: "version_id",
		IsApplied: "is_applied",
		Tstamp:    "tstamp",
	},
	Notice: struct {
		ID, Title, Content, Author, CreatedAt, ModifiedAt, IsExposed string
	}{
		ID:         "noticeId",
		Title:      "title",
		Content:    "content",
		Author:     "author",
		CreatedAt:  "createdAt",
		ModifiedAt: "modifiedAt",
		IsExposed:  "isExposed",
	},
}

var Tables = struct {
	GooseDbVersion struct {
		Name, Alias string
	}
	Notice struct {
		Name, Alias string
	}
}{
	GooseDbVersion: struct {
		Name, Alias string
	}{
		Name:  "goose_db_version",
		Alias: "t",
	},
	Notice: struct {
		Name, Alias string
	}{
		Name:  "notices",
		Alias: "t",
	},
}

type GooseDbVersion struct {
	tableName struct{} `pg:"goose_db_version,alias:t,discard_unknown_columns"`

	ID        int       `pg:"id,pk"`
	VersionID int64     `pg:"version_id,use_zero"`
	IsApplied bool      `pg:"is_applied,use_zero"`
	Tstamp    time.Time `pg:"tstamp,use_zero"`
}

type Notice struct {
	tableName struct{} `pg:"notices,alias:t,discard_unknown_columns"`

	ID         int        `pg:"noticeId,pk"`
	Title      string     `pg:"title,use_zero"`
	Content    string     `pg:"content,use_zero"`
	Author     string     `pg:"author,use_zero"`
	CreatedAt  time.Time  `pg:"createdAt,use_zero"`
	ModifiedAt *time.Time `pg:"modifiedAt"`
	IsExposed  bool       `pg:"isExposed,use_zero"`
}
