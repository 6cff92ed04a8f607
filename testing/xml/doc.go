// Package xml is an xml testing package that supports xml comparison
// utility. XMLToStruct converts a document into a tree of nodes with the
// children of every element sorted, StructToXML writes such a tree back out.
// SortXML combines the two so documents which differ only in sibling order or
// insignificant whitespace compare equal as strings.
package xml
