// Package entity はrecognitionフィーチャーのドメインモデルを定義します。
package entity

// FeatureVector は画像全体の平均色をHSV（OpenCV 8bit規約）で表します。
// Hue は [0, 180)、Saturation と Value は [0, 255] の範囲です。
type FeatureVector struct {
	Hue        float64
	Saturation float64
	Value      float64
}

// Detection は認識された料理1件です。認識呼び出しごとに生成され、永続化されません。
type Detection struct {
	Code        string // カタログの料理コード、または UNKNOWN_ で始まる合成コード
	Description string // カタログの説明、または分類ラベルそのもの
}

// RecognitionResult は認識結果です。順序付きで0件以上の Detection を持ちます。
type RecognitionResult struct {
	Detections []Detection
}
