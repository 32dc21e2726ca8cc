// Package store is the request-scoped query context over the clients,
// products and orders tables.
//
// A Context is cheap to build and must not outlive the request it was made
// for. Every collection accessor opens a fresh gorm session, so rows loaded
// through one query are never reused by another.
package store

import (
	"context"
	"strings"

	"github.com/bcama/linqlab/app/models"
	"github.com/bcama/linqlab/pkg/orm"
	"gorm.io/gorm"
)

type Context struct {
	ctx context.Context
	db  *gorm.DB
}

// New binds db to ctx.
func New(ctx context.Context, db *gorm.DB) *Context {
	return &Context{ctx: ctx, db: db}
}

// Query returns an unscoped query, for statements that pick their own table.
func (c *Context) Query() *orm.Query {
	return orm.New(c.ctx, c.db)
}

func (c *Context) Clients() *orm.Query {
	return c.Query().Model(&models.Client{})
}

func (c *Context) Products() *orm.Query {
	return c.Query().Model(&models.Product{})
}

func (c *Context) Orders() *orm.Query {
	return c.Query().Model(&models.Order{})
}

// likeEscape is the ESCAPE character used with LikeContains patterns. It is
// not special in any supported dialect's string literals.
const likeEscape = "!"

// LikeClause is the condition to pair with LikeContains.
func LikeClause(column string) string {
	return column + " LIKE ? ESCAPE '" + likeEscape + "'"
}

var likeReplacer = strings.NewReplacer(
	likeEscape, likeEscape+likeEscape,
	"%", likeEscape+"%",
	"_", likeEscape+"_",
	"[", likeEscape+"[",
)

// LikeContains turns s into a pattern matching any value containing s
// literally.
func LikeContains(s string) string {
	return "%" + likeReplacer.Replace(s) + "%"
}
