package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/ironsheep/pixel-tools-mcp/internal/imaging"
	"github.com/ironsheep/pixel-tools-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("pixel-tools-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			usage()
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := configFromEnv(os.Getenv)
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	if cfg.Debug {
		log.Printf("Pixel MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		log.Printf("Raster cache capacity: %d", cfg.MaxRasters)
	}

	srv := server.NewWithConfig(cfg)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func usage() {
	fmt.Println("pixel-tools-mcp - MCP server for pixel editing and image statistics")
	fmt.Println()
	fmt.Println("Usage: pixel-tools-mcp [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  PIXEL_MCP_LOG_LEVEL=debug    Enable debug logging")
	fmt.Printf("  PIXEL_MCP_MAX_RASTERS=N      Working rasters kept in memory (default %d)\n", imaging.DefaultMaxRasters)
	fmt.Println()
	fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
	fmt.Println("Configure it in your MCP client.")
}

// configFromEnv reads server settings through getenv.
func configFromEnv(getenv func(string) string) (server.Config, error) {
	cfg := server.Config{
		MaxRasters: imaging.DefaultMaxRasters,
		Debug:      getenv("PIXEL_MCP_LOG_LEVEL") == "debug",
	}
	if v := getenv("PIXEL_MCP_MAX_RASTERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("PIXEL_MCP_MAX_RASTERS must be a positive integer, got %q", v)
		}
		cfg.MaxRasters = n
	}
	return cfg, nil
}
