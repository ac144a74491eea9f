// Package ordermatrix turns the flat line items of an order into the paginated
// size-by-(brand, style) table printed on the order form.
//
// The pipeline is normalize -> dimensions -> pivot -> paginate -> feed. It holds
// no state, so every function is safe for concurrent use.
package ordermatrix
