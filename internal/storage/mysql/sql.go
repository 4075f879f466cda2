package mysql

const insertContactSQL = `
INSERT INTO contacts
  (resident_id, surname, name, number, email)
VALUES
  (?, ?, ?, ?, ?)
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

const selectContactsByResidentSQL = `
SELECT resident_id, surname, name, number, email
FROM contacts
WHERE resident_id = ?
ORDER BY id
`

const selectAllContactsSQL = `
SELECT resident_id, surname, name, number, email
FROM contacts
ORDER BY id
`
