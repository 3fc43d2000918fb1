/*
Package pdbx reads and writes data files and dictionaries in the
PDBx/mmCIF format used by the Protein Data Bank.

A document is a sequence of containers: data blocks opened by a data_
keyword and dictionary definition frames opened by save_. Each
container holds named categories, and a category is a small table of
attributes and rows. Single-row categories appear in a file as
item-value pairs, multi-row categories as loop_ constructs.

Reading a file:

	containers, err := pdbx.Parse(file)
	if err != nil {
		// handle error
	}
	block := containers[0]
	cat := block.Category("atom_site")
	v, err := cat.Value("Cartn_x", 0)

Building and writing a document:

	cat := pdbx.NewCategoryFrom("cell", []string{"length_a"},
		[][]pdbx.Value{{pdbx.Float(61.35)}})
	block := pdbx.NewContainer("1KIP")
	block.Append(cat)
	err := pdbx.Write(os.Stdout, []*pdbx.Container{block})

The writer derives quoting from value content alone; quoting style in
the input is not preserved across a parse and re-write. Null cells are
written as "?" and inapplicable cells as ".". Writer behavior can be
adjusted with functional options such as RowPartition and
AvoidEmbeddedQuoting.

For the common task of moving category rows in and out of Go structs,
UnmarshalCategory and MarshalCategory map columns to struct fields via
`cif` tags.
*/
package pdbx
