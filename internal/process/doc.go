// Package process terminates the headless browser and every helper process
// it spawned, so an interrupted batch leaves no Chrome behind.
package process
