// Package services holds the view logic shared by the browser panel and the
// operator console: paging math, filter handling, form validation and the
// read/write flows of every screen, expressed over client.Client.
package services
