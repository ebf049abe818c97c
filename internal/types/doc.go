/*
Package types defines the data structures shared across usercrud.

# Records

UserRecord:
  - One row of the directory (id, first/last name, age, city)
  - Age is free text, stored exactly as entered

FormState:
  - Staging values for the add form and inline editing
  - Reset to empty after a successful submit or save

Snapshot:
  - Immutable copy of the controller state for the view layer
  - EditIndex is -1 when no row is being edited

# Wire Types

RemoteUser / RemoteAddress:
  - Shape of a user object returned by the directory service
  - Only id, firstName, lastName, age and address.city are consumed

Age:
  - Accepts both JSON numbers and strings
  - Marshals back to a number when the value is numeric
*/
package types
