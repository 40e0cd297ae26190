// Package crossing detects periodic level crossings in sampled waveforms.
//
// A [Band] places a low and a high threshold around a level. Each sample
// transition is classified into an [Event] and fed to two [Tracker] values,
// one per edge direction, so that noise on a plateau inside the band cannot
// produce double counts. A [Detector] drives both trackers across a buffer and
// records a [Point] at the sample nearest to the level for every debounced
// edge. Rising and falling points strictly alternate.
//
// Detectors running over the same sample sequence at different levels can be
// correlated with [Merge] and [FindSequence].
package crossing
