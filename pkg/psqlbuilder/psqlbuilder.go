package psqlbuilder

import "github.com/Masterminds/squirrel"

// builder is preconfigured for postgres positional placeholders ($1, $2, ...).
var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Select starts a SELECT statement with $ placeholders.
func Select(columns ...string) squirrel.SelectBuilder {
	return builder.Select(columns...)
}

// Insert starts an INSERT statement with $ placeholders.
func Insert(into string) squirrel.InsertBuilder {
	return builder.Insert(into)
}

// Update starts an UPDATE statement with $ placeholders.
func Update(table string) squirrel.UpdateBuilder {
	return builder.Update(table)
}
