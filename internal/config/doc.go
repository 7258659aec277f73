// Package config provides configuration parsing for fileroutes projects.
//
// The configuration is stored in fileroutes.json at the project root.
// Every field is optional; a project without the file uses the defaults.
//
// # Configuration File Structure
//
//	{
//	  "paths": {
//	    "views": "app/views",
//	    "manifest": ""
//	  },
//	  "output": "app/generated/routes.json",
//	  "indent": "  ",
//	  "dev": {
//	    "host": "localhost",
//	    "port": 3100,
//	    "debounce": "150ms"
//	  },
//	  "publish": {
//	    "bucket": "my-app-config",
//	    "key": "routes.json",
//	    "region": "us-east-1",
//	    "endpoint": "http://localhost:9000"
//	  }
//	}
//
// FILEROUTES_OUTPUT, FILEROUTES_VIEWS and FILEROUTES_PUBLISH_BUCKET override
// the corresponding fields when ApplyEnv is called.
//
// # Usage
//
//	cfg, err := config.LoadFromWorkingDir()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Views:", cfg.ViewsPath())
package config
