// Licensed to the LF AI & Data foundation under one
// or more contributor license agreements. See the NOTICE file
// distributed with this work for additional information
// regarding copyright ownership. The ASF licenses this file
// to you under the Apache License, Version 2.0 (the
// "License"); you may not use this file except in compliance
// with the License. You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// gardenNamespace 是当前项目所有 Prometheus 指标使用的命名空间。
	gardenNamespace = "recordgarden"

	statusLabelName = "status"

	StatusOK          = "ok"
	StatusCorrupted   = "corrupted"
	StatusIoError     = "io_error"
	StatusDeserialize = "deserialize_error"
)

var (
	// recordSizeBuckets 为记录大小直方图的桶划分，单位为字节。
	recordSizeBuckets = prometheus.ExponentialBuckets(64, 4, 12)

	RecordWriteTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: gardenNamespace,
			Name:      "record_write_total",
			Help:      "number of records written to streams",
		})

	RecordWriteBytes = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: gardenNamespace,
			Name:      "record_write_bytes",
			Help:      "bytes written to streams, length prefixes included",
		})

	RecordReadTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: gardenNamespace,
			Name:      "record_read_total",
			Help:      "number of record read attempts by outcome",
		}, []string{statusLabelName})

	RecordSizeBytes = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: gardenNamespace,
			Name:      "record_size_bytes",
			Help:      "payload size of records written to streams",
			Buckets:   recordSizeBuckets,
		})

	metricRegisterer prometheus.Registerer
)

// GetRegisterer 返回全局 Prometheus Registerer。
// 如果尚未通过 Register 显式设置，则返回 prometheus.DefaultRegisterer。
func GetRegisterer() prometheus.Registerer {
	if metricRegisterer == nil {
		return prometheus.DefaultRegisterer
	}
	return metricRegisterer
}

// Register 注册当前定义的所有指标。
// 通常应在 init 函数中调用。
func Register(r prometheus.Registerer) {
	r.MustRegister(RecordWriteTotal)
	r.MustRegister(RecordWriteBytes)
	r.MustRegister(RecordReadTotal)
	r.MustRegister(RecordSizeBytes)
	metricRegisterer = r
}
