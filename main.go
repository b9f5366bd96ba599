package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/avsc-hub/avsc-hub/internal/config"
	"github.com/avsc-hub/avsc-hub/internal/logging"
	"github.com/avsc-hub/avsc-hub/internal/server"
	"github.com/avsc-hub/avsc-hub/internal/server/routes"
	"github.com/avsc-hub/avsc-hub/internal/source"
	"github.com/avsc-hub/avsc-hub/internal/store"
	"github.com/avsc-hub/avsc-hub/internal/version"
)

// cliOptions 汇总 CLI 标志解析后的结果，便于在测试中注入。
type cliOptions struct {
	configPath  string
	checkOnly   bool
	showVersion bool
	loadOnly    bool
	resolveName string
	namespace   string
}

var (
	stdOut io.Writer = os.Stdout
	stdErr io.Writer = os.Stderr
)

func main() {
	opts, err := parseCLIFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(stdErr, err.Error())
		os.Exit(2)
	}
	os.Exit(run(opts))
}

// run 根据解析到的 CLI 选项执行业务流程，并返回退出码，方便测试。
func run(opts cliOptions) int {
	if opts.showVersion {
		printVersion()
		return 0
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(stdErr, "加载配置失败: %v\n", err)
		return 1
	}

	logger, err := logging.InitLogger(cfg.Global)
	if err != nil {
		fmt.Fprintf(stdErr, "初始化日志失败: %v\n", err)
		return 1
	}

	if opts.checkOnly {
		fields := logging.BaseFields("check_config", opts.configPath)
		fields["schema_path"] = cfg.Schema.Path
		fields["format"] = cfg.Schema.Format
		fields["result"] = "ok"
		logger.WithFields(fields).Info("配置校验通过")
		return 0
	}

	// 单次命令的输出写到 stdout，诊断日志不能与之混在一起。
	if opts.resolveName != "" || opts.loadOnly {
		if cfg.Global.LogFilePath == "" {
			logger.SetOutput(stdErr)
		}
	}

	st, err := buildStore(cfg, logger)
	if err != nil {
		fmt.Fprintf(stdErr, "初始化 schema store 失败: %v\n", err)
		return 1
	}

	switch {
	case opts.resolveName != "":
		return runResolve(st, opts)
	case opts.loadOnly:
		return runLoad(st)
	}

	fields := logging.BaseFields("startup", opts.configPath)
	fields["schema_path"] = cfg.Schema.Path
	fields["format"] = cfg.Schema.Format
	fields["listen_port"] = cfg.Global.ListenPort
	fields["version"] = version.Full()
	logger.WithFields(fields).Info("配置加载完成")

	serialized := server.NewSerializedStore(st)
	if cfg.Schema.Preload {
		if _, err := serialized.LoadAll(); err != nil {
			fmt.Fprintf(stdErr, "预加载 schema 失败: %v\n", err)
			return 1
		}
	}

	if err := startHTTPServer(cfg, serialized, logger); err != nil {
		fmt.Fprintf(stdErr, "HTTP 服务启动失败: %v\n", err)
		return 1
	}
	return 0
}

// buildStore 按“配置 → 定义源 → 解析器 → store”顺序组装解析引擎。
func buildStore(cfg *config.Config, logger *logrus.Logger) (*store.Store, error) {
	meta, ok := cfg.Schema.FormatMetadata()
	if !ok {
		return nil, fmt.Errorf("format %s is not registered", cfg.Schema.Format)
	}
	src, err := source.NewDir(cfg.Schema.Path)
	if err != nil {
		return nil, err
	}
	return store.New(store.Options{
		Source:    src,
		Parser:    meta.NewParser(),
		Logger:    logger,
		Extension: cfg.Schema.EffectiveExtension(),
	})
}

func runResolve(st *store.Store, opts cliOptions) int {
	found, err := st.Find(opts.resolveName, opts.namespace)
	if err != nil {
		fmt.Fprintf(stdErr, "解析 schema 失败: %v\n", err)
		if errors.Is(err, store.ErrSchemaNotFound) {
			return 3
		}
		return 1
	}
	var pretty any
	if err := json.Unmarshal([]byte(found.String()), &pretty); err != nil {
		fmt.Fprintln(stdOut, found.String())
		return 0
	}
	enc := json.NewEncoder(stdOut)
	enc.SetIndent("", "  ")
	if err := enc.Encode(pretty); err != nil {
		fmt.Fprintf(stdErr, "输出 schema 失败: %v\n", err)
		return 1
	}
	return 0
}

func runLoad(st *store.Store) int {
	if _, err := st.LoadAll(); err != nil {
		fmt.Fprintf(stdErr, "批量加载失败: %v\n", err)
		return 1
	}
	for _, name := range st.Names() {
		fmt.Fprintln(stdOut, name)
	}
	return 0
}

// parseCLIFlags 解析 CLI 参数，并结合环境变量计算最终的配置路径。
func parseCLIFlags(args []string) (cliOptions, error) {
	fs := flag.NewFlagSet("avsc-hub", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		configFlag string
		opts       cliOptions
	)

	fs.StringVar(&configFlag, "config", "", "配置文件路径（默认 ./config.toml，可被 AVSC_HUB_CONFIG 覆盖）")
	fs.BoolVar(&opts.checkOnly, "check-config", false, "仅校验配置后退出")
	fs.BoolVar(&opts.showVersion, "version", false, "显示版本信息")
	fs.BoolVar(&opts.loadOnly, "load", false, "批量加载全部 schema 并输出名称列表")
	fs.StringVar(&opts.resolveName, "resolve", "", "解析单个 schema 并输出规范化 JSON")
	fs.StringVar(&opts.namespace, "namespace", "", "与 -resolve 搭配使用的命名空间")

	if err := fs.Parse(args); err != nil {
		return cliOptions{}, fmt.Errorf("解析参数失败: %w", err)
	}
	if opts.namespace != "" && opts.resolveName == "" {
		return cliOptions{}, errors.New("-namespace 需要与 -resolve 一起使用")
	}

	path := os.Getenv("AVSC_HUB_CONFIG")
	if configFlag != "" {
		path = configFlag
	}
	if path == "" {
		path = "config.toml"
	}
	opts.configPath = path

	return opts, nil
}

// startHTTPServer 启动诊断服务，收到 SIGINT/SIGTERM 后在 ShutdownTimeout 内优雅退出。
func startHTTPServer(cfg *config.Config, st *server.SerializedStore, logger *logrus.Logger) error {
	port := cfg.Global.ListenPort
	app, err := server.NewApp(server.AppOptions{
		Logger:     logger,
		ListenPort: port,
	})
	if err != nil {
		return err
	}
	routes.RegisterSchemaRoutes(app, st, routes.StoreInfo{
		Root:      cfg.Schema.Path,
		Format:    cfg.Schema.Format,
		Extension: cfg.Schema.EffectiveExtension(),
	})
	server.NotFound(app)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.WithFields(logrus.Fields{
			"action":  "listen",
			"port":    port,
			"schemas": st.Len(),
		}).Info("Fiber 服务启动")
		errCh <- app.Listen(fmt.Sprintf(":%d", port))
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.WithField("action", "shutdown").Info("收到退出信号")
		return app.ShutdownWithTimeout(cfg.Global.ShutdownTimeout.DurationValue())
	}
}
