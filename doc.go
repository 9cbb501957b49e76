/* Command gon runs (N) programs.

(N) is a tiny tape language. A program is a string of single character
operators; every other character is a comment, as is everything from ';' to
the end of a line. Programs run against a tape of unsigned 64-bit cells with a
cursor on one of them. The tape is never empty, and starts out as one cell
per seed element given on the command line, or one zero cell.

Operators

	+  add one to the current cell; by default it sticks at the maximum,
	   -overflow wrap makes it wrap around to zero instead
	-  subtract one from the current cell, stopping at zero
	>  move right; moving past the last cell appends a new zero cell
	<  move left; moving past the first cell prepends a new zero cell
	[  start a loop that runs as many times as the current cell's value
	]  end the innermost loop iteration
	i  set the current cell to its index, counting from zero
	#  set the current cell to the number of cells
	(  erase every cell left of the cursor
	)  erase every cell right of the cursor

Loops

A loop's count is taken when its '[' runs: the body then runs exactly that
many times, no matter what it does to the cell that the count came from. So
"+++[+]" leaves 6, not an endless loop. When the count is zero, the body is
skipped over entirely, nested loops and all.

A ']' with no loop to close does nothing. A '[' with no closing ']' either
skips the rest of the program, or runs it once.

Since no loop can outlast its count, every (N) program halts. It may take a
very long time to do so: -step-limit, -cell-limit and -timeout abort runs that
get out of hand.

The ring dialect

Selected by -dialect ring, this older dialect treats the tape as a ring read
starting at the cursor. It has no i, ( or ) operators, and instead:

	>  rotate the ring right, so that the last cell is now current
	<  rotate the ring left, so that the second cell is now current
	:  append a copy of the current cell to the end of the ring
	|  remove the last cell of the ring, unless it is the only one

Input and output

Seed elements are decimal numbers or rune literals like 'A' or <ESC> by
default; -ib and -ir instead give every byte or rune of each argument its own
cell. After the run, the tape is written out as space separated numbers by
default; -ob writes each value as the fewest little-endian bytes that hold
it, and -or writes each value as a rune.

Other modes

	-emit go  writes a standalone Go program equivalent to the source
	-encode   reads the source file as data, writing a program that
	          leaves its bytes on the tape

Settings can also be given by a TOML file named with -config, using the long
flag names with underscores for dashes:

	dialect = "ring"
	format = "bytes"
	timeout = "5s"
	step_limit = 1000000
*/
package main
