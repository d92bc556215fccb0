/*
Package operation rewrites one column of a delimited file.

	+-------------+     +-------------+     +--------------+
	|   input     | --> | text.Header | --> | ColumnReplacer|
	| (bufio)     |     | (once)      |     | (per row)    |
	+-------------+     +-------------+     +------+-------+
	                                               |
	                                        +------+-------+
	                                        | atomic output |
	                                        | (tmp+rename)  |
	                                        +--------------+

🔄 Flow:
1. Opens the input; a missing, unreadable or empty file is ErrInputMissing
2. Reads the header and resolves every replacement column once
3. Creates a temporary file next to the output
4. Streams rows: split, rewrite or skip, join, write
5. Renames the temporary file over the output

A run that fails before step 5 leaves no output behind, and an output file
that already existed is left untouched. Rows whose field count differs from
the header are reported on the console and left out.

🔍 Example:

	op, err := operation.NewRewriteOperation(operation.Options{
		Config:  cfg,
		Console: console,
	})
	result, err := op.Execute(ctx)
*/
package operation
