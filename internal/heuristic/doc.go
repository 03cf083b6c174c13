// Package heuristic implements a background-removal engine driven purely by
// colour statistics.
//
// # Algorithm
//
//  1. Background estimation: the mean RGB of the one-pixel image border.
//  2. Distance: Euclidean RGB distance of every pixel to that colour,
//     normalized by the largest distance in the image.
//  3. Alpha mapping, one of:
//     - hard threshold: binary mask, opaque where the normalized distance
//       reaches threshold/255
//     - logistic curve: a sigmoid centred at 0.35 whose slope falls as
//       softness rises, rescaled so the output spans 0..255
//  4. Smoothing: a 3x3 box mean over the mask, logistic masks only, for images
//     larger than 3x3 in both directions.
//  5. Preview: the input pixels with their alpha replaced by the mask.
//
// The Config mode is accepted and ignored.
//
// # Thread Safety
//
// An Engine holds only its settings. RemoveBackground allocates all of its
// working state per call, so one Engine may serve concurrent callers.
package heuristic
