/*
Package dawg reads and queries double-array DAWG dictionaries, the compact
word indexes used by morphological analyzers to map a word to an integer
identifier.

A dictionary is a flat array of packed 32-bit units. Each unit carries a
label byte, a transition offset and a flag telling whether the node ends a
key. Following a byte from node i means computing i ^ offset ^ byte and
checking that the unit found there carries that byte as its label, so a
lookup costs one array read pair per key byte and never allocates. The bit
layout is summarized at the top of units.go and the file format at the top
of disk.go.

Dictionaries are built elsewhere; this package only loads them. Use Load
for a file on disk (usually gzip compressed), Read for an uncompressed
stream, or LoadFrom and LoadAll with a blobsource.Source:

	d, err := dawg.Load("words.dawg")
	if err != nil {
		log.Fatal(err)
	}
	if id, ok := d.Find("стали"); ok {
		// use id to index the paradigm tables
	}

A loaded Dictionary is immutable, and all of its methods are safe for
concurrent use.
*/
package dawg
