/*
Package records implements the record list controller.

The Controller owns the in-memory collection of user records fetched from
the directory, the search text, the derived filtered view, the edit index
and the form state shared by the add and edit flows. Nothing is persisted.

Operations:
  - Load: replace the collection from the Source; empty it on failure
  - Search: recompute the view by case-insensitive substring match on
    "{first} {last}" or city
  - BeginEdit / SaveEdit / CancelEdit: inline editing of a view row
  - Delete: remove a view row from the view and the collection
  - AddRecord: append a record built from the form

View positions are indices into the filtered view, matching what the user
sees. The view is a pure function of (records, searchText) after every
operation, and Snapshot hands an immutable copy to the rendering layer.
*/
package records
