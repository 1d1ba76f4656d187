// Package postgres implements the store interfaces using PostgreSQL.
package postgres
