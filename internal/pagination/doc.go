// Package pagination derives the visible page of a filtered camera view.
//
// All paging is local: the whole collection has already been fetched.
// Pages are 1-based, sizes come from PageSizes, and changing the size
// always returns to page 1.
//
//	st := pagination.New()
//	st, _ = st.SetSize(20)
//	w := st.Window(len(filtered))
//	visible := pagination.Slice(filtered, w)
//	fmt.Println(w.Summary()) // Showing 1 to 20 of 25 entries
package pagination
