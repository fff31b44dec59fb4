package main

import "memtrack/internal/model"

// Type aliases to internal model package
type Bucket = model.Bucket
type ProcessSample = model.ProcessSample
type Snapshot = model.Snapshot
type ThresholdConfig = model.ThresholdConfig
type ClassifiedProcess = model.ClassifiedProcess
type AnalysisResult = model.AnalysisResult
