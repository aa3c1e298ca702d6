//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
//	# Android
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.gonewx.portfolio -o build/android/portfolio.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	ebitenmobile bind -target ios -tags mobile -o build/ios/Portfolio.xcframework -v ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/gonewx/portfolio/pkg/app"
	"github.com/gonewx/portfolio/pkg/embedded"
	"github.com/gonewx/portfolio/pkg/game"
)

var gameApp *app.App

func init() {
	embedded.Init(assetsFS, dataFS)

	var err error
	gameApp, err = app.NewApp(app.Config{Verbose: true})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	// 打开信号镜像，原生外壳通过 NextSignal 轮询
	gameApp.Signals(64)
	mobile.SetGame(gameApp)
}

// NextSignal 取出一条发往原生外壳的信号（JSON），没有时返回空字符串
func NextSignal() string {
	return gameApp.NextHostMessage()
}

// ResumeAfterModal 原生外壳关闭项目弹窗后调用
func ResumeAfterModal(level int) {
	gameApp.Send(game.Signal{Kind: game.SignalResumeAfterModal, Level: level})
}

// SetMuted 原生外壳切换静音
func SetMuted(muted bool) {
	gameApp.Send(game.Signal{Kind: game.SignalToggleMute, Muted: muted})
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
