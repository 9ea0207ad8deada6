// Package watch reports changes to the YAML files of a case directory.
//
// A Detector watches a single directory with fsnotify and folds bursts of
// file system events (editors often write, rename and chmod a file in quick
// succession) into one Event once the directory has been quiet for the
// debounce interval.
package watch
