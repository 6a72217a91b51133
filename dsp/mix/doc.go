// Package mix provides sample mixing primitives.
//
// [Two] is a soft additive mix: when both samples share a sign the product
// term pulls the sum back toward ±1, so reinforcing signals saturate
// smoothly instead of hard clipping. [Samples] folds [Two] over any number of
// inputs and [Block] applies it element-wise to buffers.
package mix
