// Package presentation turns portfolio data into renderable view models.
// Nothing here touches a document or template: state changes go through
// Reduce, and BuildPage maps a State to the records a view layer draws.
package presentation
